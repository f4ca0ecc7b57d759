package structure

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultLabelWidth is the maximum number of runes of a control-flow
// condition kept in a node label.
const DefaultLabelWidth = 40

// minLabelWidth leaves room for at least a few runes plus the "..." marker.
const minLabelWidth = 8

const ellipsis = "..."

var (
	classHeaderRe = regexp.MustCompile(`^class\s+([\p{L}_][\p{L}\p{N}_]*)`)
	defHeaderRe   = regexp.MustCompile(`^(?:async\s+)?def\s+([\p{L}_][\p{L}\p{N}_]*)`)
	flowHeaderRe  = regexp.MustCompile(`^(if|elif|else|while|for|async\s+for)\b`)
)

var flowKinds = map[string]Kind{
	"if":        KindIf,
	"elif":      KindIf,
	"else":      KindIf,
	"while":     KindWhile,
	"for":       KindFor,
	"async for": KindFor,
}

// controlFlowLabel recognises a control-flow header and returns its kind and
// condensed label.
func controlFlowLabel(text string, width int) (Kind, string, bool) {
	m := flowHeaderRe.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	keyword := strings.Join(strings.Fields(m[1]), " ")
	rest := text[len(m[0]):]

	end := headerColon(rest)
	if end < 0 {
		// Not a block header (e.g. a conditional expression statement).
		return 0, "", false
	}
	if keyword == "else" {
		if strings.TrimSpace(rest[:end]) != "" {
			return 0, "", false
		}
		return KindIf, "else:", true
	}

	cond := strings.Join(strings.Fields(rest[:end]), " ")
	if cond == "" {
		return 0, "", false
	}
	return flowKinds[keyword], keyword + " " + truncate(cond, width) + ":", true
}

// headerColon returns the index of the colon that ends a block header: the
// first ':' outside brackets and strings that is not part of ':='.
// It returns -1 if there is none.
func headerColon(s string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 && (i+1 >= len(s) || s[i+1] != '=') {
				return i
			}
		}
	}
	return -1
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if width < minLabelWidth {
		width = minLabelWidth
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:width-len(ellipsis)]), " ") + ellipsis
}
