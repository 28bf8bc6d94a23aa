// Package stats computes static statistics about submitted source code
// using a Tree-sitter syntax tree.
package stats

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Stats describes a single code submission.
type Stats struct {
	Lines     int `json:"lines"`
	Functions int `json:"functions"`
	Classes   int `json:"classes"`
}

// Analyzer parses submissions as Python and counts definition nodes.
// Parsing is best-effort: input that does not parse cleanly reports zero
// functions and classes while the line count still reflects the raw text.
type Analyzer struct {
	mu     sync.Mutex // Tree-sitter parsers are not safe for concurrent use
	parser *tree_sitter.Parser
}

// NewAnalyzer creates an Analyzer with the Python grammar loaded.
func NewAnalyzer() (*Analyzer, error) {
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_python.Language())); err != nil {
		parser.Close()
		return nil, fmt.Errorf("set python grammar: %w", err)
	}
	return &Analyzer{parser: parser}, nil
}

// Close releases parser resources.
func (a *Analyzer) Close() {
	if a.parser != nil {
		a.parser.Close()
	}
}

// Analyze computes statistics for the given code. It is pure with respect
// to its input and safe to call from concurrent handlers.
func (a *Analyzer) Analyze(code string) Stats {
	s := Stats{Lines: CountLines(code)}

	a.mu.Lock()
	defer a.mu.Unlock()

	tree := a.parser.Parse([]byte(code), nil)
	if tree == nil {
		return s
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return s
	}

	s.Functions, s.Classes = countDefinitions(root)
	return s
}

// countDefinitions walks the syntax tree and counts function and class
// definitions at any nesting depth.
func countDefinitions(node *tree_sitter.Node) (functions, classes int) {
	switch node.Kind() {
	case "function_definition":
		functions++
	case "class_definition":
		classes++
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		f, c := countDefinitions(node.Child(i))
		functions += f
		classes += c
	}

	return functions, classes
}

// CountLines counts lines the way splitlines does: \n, \r and \r\n all
// end a line, trailing content without a line break still counts as a
// line, and the empty string has zero lines.
func CountLines(code string) int {
	if code == "" {
		return 0
	}

	lines := 0
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '\n':
			lines++
		case '\r':
			lines++
			if i+1 < len(code) && code[i+1] == '\n' {
				i++
			}
		}
	}

	last := code[len(code)-1]
	if last != '\n' && last != '\r' {
		lines++
	}
	return lines
}
