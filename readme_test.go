package coinjar

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// This file tests the examples of README.md: the first ```ledger block is
// saved as the ledger file, then every ```bash block starting with coinjar is
// run and its standard output compared with the ```console block that follows.

// example holds a command and its expected output.
type example struct {
	Cmd      string
	Expected string
}

var (
	ledgerBlockRE = regexp.MustCompile("(?s)```ledger\n(.*?)```")
	exampleRE     = regexp.MustCompile("(?s)```bash\n(coinjar[^\n]*)\n```\n\n```console\n(.*?)```")
)

// buildCoinjar builds the coinjar command into tmp and returns its path.
func buildCoinjar(t *testing.T, tmp string) string {
	t.Helper()
	output := filepath.Join(tmp, "coinjar")
	if out, err := exec.Command("go", "build", "-o", output, "./coinjar/").CombinedOutput(); err != nil {
		t.Fatalf("failed to build coinjar command: %v\n%s", err, out)
	}
	return output
}

func TestReadme(t *testing.T) {
	content, err := os.ReadFile("README.md")
	if err != nil {
		t.Fatalf("failed to read README.md: %v", err)
	}
	ledger := ledgerBlockRE.FindSubmatch(content)
	if ledger == nil {
		t.Fatal("README.md has no ledger example")
	}
	var examples []example
	for _, m := range exampleRE.FindAllStringSubmatch(string(content), -1) {
		examples = append(examples, example{Cmd: m[1], Expected: m[2]})
	}
	if len(examples) == 0 {
		t.Fatal("README.md has no command example")
	}

	tmp := t.TempDir()
	bin := buildCoinjar(t, t.TempDir())
	if err := os.WriteFile(filepath.Join(tmp, "coinjar.ledger"), ledger[1], 0o644); err != nil {
		t.Fatal(err)
	}

	for _, ex := range examples {
		args := strings.Fields(ex.Cmd)
		command := exec.Command(bin, args[1:]...)
		command.Dir = tmp
		command.Env = append(os.Environ(), "COINJAR_CONFIG=", "COINJAR_AMOUNT_COLUMN=", "COINJAR_LEDGER_FILE=coinjar.ledger")
		output, err := command.Output()
		if err != nil {
			t.Fatalf("%s: %v, output:\n%s", ex.Cmd, err, output)
		}
		if got := string(output); got != ex.Expected {
			t.Errorf("%s: output mismatch\ngot:\n%q\nwant:\n%q", ex.Cmd, got, ex.Expected)
		}
	}
}
