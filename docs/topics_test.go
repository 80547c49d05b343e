package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation is in sync with itself.
	// It checks two things:
	// 1. Every topic listed in docs/readme.md can be loaded by `pmc topic <name>`.
	// 2. Every .md file in the docs directory (excluding readme.md itself) is listed in docs/readme.md.

	// Read docs/readme.md line by line and extract topics using regex.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		line := scanner.Text()
		matches := topicRegex.FindStringSubmatch(line)
		if len(matches) > 1 {
			topic := strings.TrimSpace(matches[1])
			topicsInReadme = append(topicsInReadme, topic)
		}
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	// Check 1: Every topic listed in docs/readme.md can be successfully loaded.
	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			_, err := GetTopic(topic)
			if err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	// Check 2: Every .md file in the docs directory (excluding readme.md itself) is listed.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}

	var mdFiles []string
	for _, file := range files {
		base := filepath.Base(file)
		if base != "readme.md" {
			mdFiles = append(mdFiles, strings.TrimSuffix(base, ".md"))
		}
	}

	for _, mdFile := range mdFiles {
		found := false
		for _, topic := range topicsInReadme {
			if topic == mdFile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in docs/readme.md", mdFile)
		}
	}
}

func TestGetAllTopics(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	if len(topics) == 0 {
		t.Fatal("GetAllTopics() returned no topics")
	}
	for _, topic := range topics {
		if topic == "readme" {
			t.Error("GetAllTopics() must not list readme as a topic")
		}
	}

	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) error = %v", err)
	}
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			t.Fatalf("GetTopic(%q) error = %v", topic, err)
		}
		if !strings.Contains(all, content) {
			t.Errorf("GetTopic(*) is missing the %q topic", topic)
		}
	}
}

// subcommandNames are the names cmd.Register wires into the commander. The
// cmd package imports docs, so the list is repeated here rather than imported;
// TestTopicStructure fails when a topic demonstrates a command that no longer
// exists.
var subcommandNames = map[string]bool{
	"declare":     true,
	"call":        true,
	"contribute":  true,
	"fees":        true,
	"distribute":  true,
	"yield":       true,
	"return":      true,
	"expect":      true,
	"value":       true,
	"tx":          true,
	"investments": true,
	"review":      true,
	"project":     true,
	"forecast":    true,
	"calendar":    true,
	"liquidity":   true,
	"fmt":         true,
	"topic":       true,
}

// TestTopicStructure parses every topic and checks its shape: it must start
// with a level-1 heading, and every fenced code block must hold pmc command
// lines only.
func TestTopicStructure(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("failed to read %s: %v", file, err)
			}

			root := goldmark.DefaultParser().Parse(text.NewReader(content))

			first := root.FirstChild()
			h, ok := first.(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Errorf("%s does not start with a level-1 heading", file)
			}

			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				fcb, ok := n.(*ast.FencedCodeBlock)
				if !ok {
					return ast.WalkContinue, nil
				}
				for i := 0; i < fcb.Lines().Len(); i++ {
					seg := fcb.Lines().At(i)
					line := strings.TrimSpace(string(seg.Value(content)))
					if line == "" {
						continue
					}
					fields := strings.Fields(line)
					if fields[0] != "pmc" {
						t.Errorf("%s: code block line %q is not a pmc command", file, line)
						continue
					}
					if len(fields) < 2 || !subcommandNames[fields[1]] {
						t.Errorf("%s: code block demonstrates unknown subcommand in %q", file, line)
					}
				}
				return ast.WalkContinue, nil
			})
		})
	}
}

// TestTopicExamples cross-checks the flags the examples pass against the
// flags the matching commands define, so a renamed flag cannot leave a stale
// example behind. The flag sets are repeated here for the same reason as
// subcommandNames.
func TestTopicExamples(t *testing.T) {
	flagsByCommand := map[string]map[string]bool{
		"declare":    {"id": true, "name": true, "a": true, "c": true, "d": true, "m": true, "vintage": true, "period": true, "life": true, "irr": true, "moic": true, "calls": true, "distributions": true, "bow": true},
		"call":       {"i": true, "a": true, "c": true, "d": true, "m": true},
		"contribute": {"i": true, "a": true, "c": true, "d": true, "m": true},
		"fees":       {"i": true, "a": true, "c": true, "d": true, "m": true},
		"distribute": {"i": true, "a": true, "c": true, "d": true, "m": true},
		"yield":      {"i": true, "a": true, "c": true, "d": true, "m": true},
		"return":     {"i": true, "a": true, "c": true, "d": true, "m": true},
		"expect":     {"i": true, "t": true, "a": true, "c": true, "d": true, "m": true},
		"value":      {"i": true, "a": true, "c": true, "d": true, "m": true},
		"project":    {"i": true, "horizon": true, "scenario": true, "d": true},
		"forecast":   {"p": true, "s": true, "d": true, "i": true, "manual": true, "model": true, "scenario": true, "stale": true},
		"liquidity":  {"cash": true, "c": true, "horizon": true, "scenario": true, "d": true},
	}

	flagRegex := regexp.MustCompile(`\s-([a-z]+)`)

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("failed to read %s: %v", file, err)
		}
		root := goldmark.DefaultParser().Parse(text.NewReader(content))
		ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			fcb, ok := n.(*ast.FencedCodeBlock)
			if !ok {
				return ast.WalkContinue, nil
			}
			for i := 0; i < fcb.Lines().Len(); i++ {
				seg := fcb.Lines().At(i)
				line := strings.TrimSpace(string(seg.Value(content)))
				fields := strings.Fields(line)
				if len(fields) < 2 || fields[0] != "pmc" {
					continue
				}
				known, tracked := flagsByCommand[fields[1]]
				if !tracked {
					continue
				}
				for _, m := range flagRegex.FindAllStringSubmatch(line, -1) {
					if !known[m[1]] {
						t.Errorf("%s: example %q passes flag -%s, which pmc %s does not define", file, line, m[1], fields[1])
					}
				}
			}
			return ast.WalkContinue, nil
		})
	}
}
