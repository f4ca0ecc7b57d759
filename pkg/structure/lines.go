package structure

import (
	"strings"
)

// logicalLine is one statement-level line of source: a physical line plus any
// continuation lines joined to it.
type logicalLine struct {
	no     int    // 1-based physical line where the statement starts
	indent string // leading whitespace of that physical line
	text   string // code with comments stripped and continuations joined
}

// opener is an unclosed bracket and the line it was opened on.
type opener struct {
	char byte
	line int
}

const byteOrderMark = "\ufeff"

var closerFor = map[byte]byte{')': '(', ']': '[', '}': '{'}

// lineScanner splits source text into logical lines. It tracks just enough
// lexical state (strings, brackets, backslash continuations) to know where a
// statement ends.
type lineScanner struct {
	out []logicalLine

	cur      strings.Builder
	started  bool
	curStart int
	curInd   string

	quote       byte // active string delimiter, 0 outside strings
	triple      bool
	stringStart int
	brackets    []opener
	backslash   bool // explicit line continuation pending
}

// splitLogicalLines returns the logical lines of src in source order.
// Blank lines and lines holding only a comment are dropped. A leading UTF-8
// byte order mark is ignored.
func splitLogicalLines(src []byte) ([]logicalLine, error) {
	s := &lineScanner{}
	physical := strings.Split(strings.TrimPrefix(string(src), byteOrderMark), "\n")
	for i, raw := range physical {
		if err := s.feed(strings.TrimSuffix(raw, "\r"), i+1); err != nil {
			return nil, err
		}
	}
	return s.finish()
}

func (s *lineScanner) continuing() bool {
	return s.quote != 0 || len(s.brackets) > 0 || s.backslash
}

func (s *lineScanner) feed(line string, no int) error {
	if !s.started {
		body := strings.TrimLeft(line, " \t\f")
		if body == "" || body[0] == '#' {
			return nil
		}
		s.started = true
		s.curStart = no
		s.curInd = strings.ReplaceAll(line[:len(line)-len(body)], "\f", "")
		line = body
	} else if s.quote == 0 {
		if !strings.HasSuffix(s.cur.String(), " ") {
			s.cur.WriteByte(' ')
		}
		line = strings.TrimLeft(line, " \t\f")
	} else {
		s.cur.WriteByte('\n')
	}
	s.backslash = false

	escapedEOL, err := s.scan(line, no)
	if err != nil {
		return err
	}

	if s.quote != 0 && !s.triple && !escapedEOL {
		return &ParseError{Line: s.stringStart, Reason: "unterminated string literal"}
	}
	if !s.continuing() {
		s.emit()
	}
	return nil
}

// scan consumes one physical line. It reports whether the line ended with an
// escaping backslash inside a single-quoted string.
func (s *lineScanner) scan(line string, no int) (bool, error) {
	for i := 0; i < len(line); i++ {
		c := line[i]

		if s.quote != 0 {
			if c == '\\' {
				if i == len(line)-1 {
					return true, nil
				}
				s.cur.WriteByte(c)
				s.cur.WriteByte(line[i+1])
				i++
				continue
			}
			if c == s.quote {
				if !s.triple {
					s.quote = 0
				} else if strings.HasPrefix(line[i:], strings.Repeat(string(c), 3)) {
					s.quote = 0
					s.triple = false
					s.cur.WriteString(line[i : i+3])
					i += 2
					continue
				}
			}
			s.cur.WriteByte(c)
			continue
		}

		switch c {
		case '#':
			return false, nil
		case '\'', '"':
			s.quote = c
			s.stringStart = no
			if strings.HasPrefix(line[i:], strings.Repeat(string(c), 3)) {
				s.triple = true
				s.cur.WriteString(line[i : i+3])
				i += 2
				continue
			}
		case '(', '[', '{':
			s.brackets = append(s.brackets, opener{char: c, line: no})
		case ')', ']', '}':
			if len(s.brackets) == 0 || s.brackets[len(s.brackets)-1].char != closerFor[c] {
				return false, &ParseError{Line: no, Reason: "unmatched '" + string(c) + "'"}
			}
			s.brackets = s.brackets[:len(s.brackets)-1]
		case '\\':
			if strings.TrimSpace(line[i+1:]) == "" {
				s.backslash = true
				return false, nil
			}
		}
		s.cur.WriteByte(c)
	}
	return false, nil
}

func (s *lineScanner) emit() {
	if text := strings.TrimSpace(s.cur.String()); text != "" {
		s.out = append(s.out, logicalLine{no: s.curStart, indent: s.curInd, text: text})
	}
	s.cur.Reset()
	s.started = false
}

func (s *lineScanner) finish() ([]logicalLine, error) {
	switch {
	case s.quote != 0:
		return nil, &ParseError{Line: s.stringStart, Reason: "unterminated triple-quoted string"}
	case len(s.brackets) > 0:
		open := s.brackets[len(s.brackets)-1]
		return nil, &ParseError{Line: open.line, Reason: "'" + string(open.char) + "' was never closed"}
	}
	if s.started {
		s.emit()
	}
	return s.out, nil
}
