package docs

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/coinjar"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	ledgerBlock     = "ledger"           // must decode
	ledgerError     = "ledger error"     // must fail to decode
	ledgerCanonical = "ledger canonical" // must decode and encode back to itself
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md must load, and every .md file must be
	// listed in readme.md.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); m != nil {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("GetTopic(%q) unexpected error: %v", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() unexpected error: %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestGetTopic(t *testing.T) {
	index, err := GetTopic("")
	if err != nil {
		t.Fatalf("GetTopic(\"\") unexpected error: %v", err)
	}
	if !strings.HasPrefix(index, "# coinjar") {
		t.Errorf("GetTopic(\"\") = %q, want the readme", index[:min(len(index), 40)])
	}
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(\"nope\") expected an error")
	}
	everything, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(\"*\") unexpected error: %v", err)
	}
	split, _ := GetTopic("split")
	if !strings.Contains(everything, split) {
		t.Error("GetTopic(\"*\") does not contain the split topic")
	}
}

func TestLedgerBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			for _, b := range parseMarkdown(t, file) {
				checkBlock(t, b)
			}
		})
	}
}

// Block is a fenced ledger code block of a markdown file.
type Block struct {
	Type    string
	Content string
	File    string
	Line    int
}

func checkBlock(t *testing.T, b *Block) {
	t.Helper()
	j, err := coinjar.DecodeString(b.Content, coinjar.Options{})
	switch b.Type {
	case ledgerError:
		if err == nil {
			t.Errorf("%s:%d: block decoded, want an error", b.File, b.Line)
		}
		return
	case ledgerBlock, ledgerCanonical:
		if err != nil {
			t.Errorf("%s:%d: %v", b.File, b.Line, err)
			return
		}
	}
	if b.Type == ledgerCanonical {
		if diff := cmp.Diff(b.Content, coinjar.EncodeString(j)); diff != "" {
			t.Errorf("%s:%d: block is not canonical (-doc +encoded):\n%s", b.File, b.Line, diff)
		}
	}
}

// parseMarkdown returns the ledger blocks of a markdown file.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []*Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		info := string(fcb.Info.Segment.Value(content))
		switch info {
		case ledgerBlock, ledgerError, ledgerCanonical:
		default:
			return ast.WalkContinue, nil
		}
		var body strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			body.Write(line.Value(content))
		}
		blocks = append(blocks, &Block{
			Type:    info,
			Content: body.String(),
			File:    file,
			Line:    lineNumber(content, fcb.Info.Segment.Start),
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// lineNumber returns the 1-based line of offset in source.
func lineNumber(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}
