package coinjar

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("insertion order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("b", 1).Append("a", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"b":1,"a":"hello"}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0)
		w.Optional("b", "")
		w.Optional("c", 0)
		w.Optional("d", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"a":0,"d":"hello"}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("marshal error", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("ch", make(chan int))
		if _, err := w.MarshalJSON(); err == nil {
			t.Errorf("MarshalJSON() should fail on a channel value")
		}
	})

	t.Run("balance", func(t *testing.T) {
		usd := Currency{Code: "USD", Symbol: "$", Precision: 2}
		eur := Currency{Code: "EUR", Symbol: "€", Precision: 2}
		var b Balance
		b = b.Add(M(decimal.RequireFromString("5"), usd)).Add(M(decimal.RequireFromString("-10"), eur))
		got, err := b.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"EUR":"-10.00","USD":"5.00"}`; string(got) != want {
			t.Errorf("got %s, want %s", got, want)
		}
	})
}
