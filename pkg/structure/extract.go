package structure

import (
	"fmt"
	"strings"

	apperrors "github.com/matzehuels/codediagram/pkg/errors"
)

// DefaultModuleName names the root when Options.ModuleName is empty.
const DefaultModuleName = "<module>"

// Options configures Extract.
type Options struct {
	// IncludeControlFlow adds if/elif/else, for and while headers as nodes.
	// When false they are omitted from the tree entirely.
	IncludeControlFlow bool

	// ModuleName labels the root node, typically the input file name.
	ModuleName string

	// LabelWidth caps the condition length of control-flow labels, in runes.
	// Zero means DefaultLabelWidth.
	LabelWidth int
}

// ParseError describes why nesting could not be recovered from the source.
type ParseError struct {
	Line   int    // 1-based physical line
	Reason string // human-readable cause
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// scope is an open structural node and the indentation width of its header.
type scope struct {
	indent int
	node   *Node
}

// Extract builds the structural tree of source.
//
// The returned root is always of KindModule. On failure Extract returns a
// STRUCTURAL_PARSE error wrapping a *ParseError and no tree.
func Extract(source []byte, opts Options) (*Node, error) {
	name := opts.ModuleName
	if name == "" {
		name = DefaultModuleName
	}
	width := opts.LabelWidth
	if width <= 0 {
		width = DefaultLabelWidth
	}

	lines, err := splitLogicalLines(source)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStructuralParse, err, "extract %s", name)
	}

	root := &Node{Kind: KindModule, Name: name}
	levels := []string{""}
	scopes := []scope{{indent: -1, node: root}}

	for _, ln := range lines {
		if levels, err = resolveIndent(levels, ln); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeStructuralParse, err, "extract %s", name)
		}

		for len(scopes) > 1 && scopes[len(scopes)-1].indent >= len(ln.indent) {
			scopes = scopes[:len(scopes)-1]
		}

		parent := scopes[len(scopes)-1].node
		kind, label, ok := classify(ln.text, parent.Kind, opts.IncludeControlFlow, width)
		if !ok {
			continue
		}

		n := &Node{Kind: kind, Name: label, Line: ln.no, Depth: parent.Depth + 1}
		parent.Children = append(parent.Children, n)
		scopes = append(scopes, scope{indent: len(ln.indent), node: n})
	}

	return root, nil
}

// resolveIndent updates the stack of indentation levels for ln. Deeper
// indentation must extend the current level; shallower indentation must land
// exactly on an enclosing level.
func resolveIndent(levels []string, ln logicalLine) ([]string, error) {
	top := levels[len(levels)-1]
	switch {
	case ln.indent == top:
		return levels, nil
	case strings.HasPrefix(ln.indent, top):
		return append(levels, ln.indent), nil
	}

	for len(levels) > 1 {
		levels = levels[:len(levels)-1]
		top = levels[len(levels)-1]
		if ln.indent == top {
			return levels, nil
		}
		if strings.HasPrefix(ln.indent, top) {
			break
		}
	}
	return nil, &ParseError{
		Line:   ln.no,
		Reason: fmt.Sprintf("unindent %q does not match any outer indentation level", ln.indent),
	}
}

// classify decides whether a logical line opens a structural scope.
func classify(text string, parent Kind, controlFlow bool, width int) (Kind, string, bool) {
	if m := classHeaderRe.FindStringSubmatch(text); m != nil {
		return KindClass, m[1], true
	}
	if m := defHeaderRe.FindStringSubmatch(text); m != nil {
		if parent == KindClass {
			return KindMethod, m[1], true
		}
		return KindFunction, m[1], true
	}
	if controlFlow {
		return controlFlowLabel(text, width)
	}
	return 0, "", false
}
