package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/matzehuels/codediagram/pkg/errors"
	"github.com/matzehuels/codediagram/pkg/structure"
)

// Renderer draws a structural tree as text.
//
// Implementations must be pure: the same tree always yields byte-identical
// output, and the tree is never modified.
type Renderer interface {
	Render(root *structure.Node) string
}

// Style identifies one diagram notation.
type Style int

const (
	// StyleLine is the default tree notation.
	StyleLine Style = iota
	// StyleBox draws nested bordered boxes.
	StyleBox
	// StyleASCIIArt draws rows of depth joined by arrows.
	StyleASCIIArt
	// StyleGraphMarkup emits a mermaid flowchart for GitHub.
	StyleGraphMarkup
)

var styleNames = [...]string{
	StyleLine:        "line",
	StyleBox:         "box",
	StyleASCIIArt:    "ascii-art",
	StyleGraphMarkup: "github",
}

var styleAliases = map[string]Style{
	"line":      StyleLine,
	"tree":      StyleLine,
	"box":       StyleBox,
	"ascii-art": StyleASCIIArt,
	"ascii":     StyleASCIIArt,
	"flow":      StyleASCIIArt,
	"github":    StyleGraphMarkup,
	"mermaid":   StyleGraphMarkup,
	"graph":     StyleGraphMarkup,
}

// Styles lists every style in cycle order.
var Styles = []Style{StyleLine, StyleBox, StyleASCIIArt, StyleGraphMarkup}

// String returns the canonical style name.
func (s Style) String() string {
	if s >= 0 && int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "unknown"
}

// Next returns the style after s, wrapping around.
func (s Style) Next() Style {
	return Styles[(int(s)+1)%len(Styles)]
}

// StyleNames returns the canonical names of all styles.
func StyleNames() []string {
	names := make([]string, len(Styles))
	for i, s := range Styles {
		names[i] = s.String()
	}
	return names
}

// ParseStyle resolves a style name or alias, case-insensitively.
func ParseStyle(name string) (Style, error) {
	if s, ok := styleAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return 0, apperrors.New(apperrors.ErrCodeInvalidStyle,
		"unknown style %q (valid: %s)", name, strings.Join(StyleNames(), ", "))
}

// Select folds the requested styles into one. No request selects
// [StyleLine]; repeating the same style is allowed; two different styles
// fail with INVALID_STYLE_SELECTION.
func Select(requested ...Style) (Style, error) {
	if len(requested) == 0 {
		return StyleLine, nil
	}
	chosen := requested[0]
	for _, s := range requested[1:] {
		if s != chosen {
			return 0, apperrors.New(apperrors.ErrCodeInvalidStyleSelection,
				"styles %s and %s are mutually exclusive", chosen, s)
		}
	}
	if chosen < 0 || int(chosen) >= len(styleNames) {
		return 0, apperrors.New(apperrors.ErrCodeInvalidStyle, "unknown style %d", int(chosen))
	}
	return chosen, nil
}

var tags = map[structure.Kind]string{
	structure.KindModule:   "[MODULE]",
	structure.KindClass:    "[CLASS]",
	structure.KindFunction: "[FUNCTION]",
	structure.KindMethod:   "[METHOD]",
	structure.KindIf:       "[IF]",
	structure.KindFor:      "[FOR]",
	structure.KindWhile:    "[WHILE]",
}

// Tag returns the bracketed upper-case marker for a kind, e.g. "[CLASS]".
func Tag(k structure.Kind) string {
	if t, ok := tags[k]; ok {
		return t
	}
	return "[" + strings.ToUpper(k.String()) + "]"
}

// Label returns the display name of n. Functions and methods get "()".
func Label(n *structure.Node) string {
	if n.Kind.IsCallable() {
		return n.Name + "()"
	}
	return n.Name
}

// TaggedLabel returns Tag followed by Label, e.g. "[METHOD] run()".
func TaggedLabel(n *structure.Node) string {
	return Tag(n.Kind) + " " + Label(n)
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return lipgloss.Width(s)
}

// Pad right-pads s with spaces to width cells.
func Pad(s string, width int) string {
	if w := Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Title returns the markdown heading used by the plain-text styles.
func Title(name string) string {
	return "# Code Structure: " + name
}

// Document wraps diagram lines in a titled markdown document with a fenced
// block. The result always ends with a newline.
func Document(name string, lines []string) string {
	var b strings.Builder
	b.WriteString(Title(name))
	b.WriteString("\n\n```\n")
	for _, l := range lines {
		b.WriteString(strings.TrimRight(l, " "))
		b.WriteByte('\n')
	}
	b.WriteString("```\n")
	return b.String()
}
