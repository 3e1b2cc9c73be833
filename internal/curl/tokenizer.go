package curl

import (
	"fmt"
	"strings"
	"unicode"
)

// quoteState tracks shell quoting while scanning a command character by
// character. Single quotes are literal, double quotes respect backslash
// escapes, $'...' uses ANSI-C escape decoding, and a backslash outside
// single quotes escapes the next character (a backslash-newline is a line
// continuation and disappears).
type quoteState struct {
	inSingle bool
	inDouble bool
	inANSI   bool
	escaped  bool
}

func (s *quoteState) open() bool {
	return s.inSingle || s.inDouble || s.inANSI
}

type lexer struct {
	state quoteState
	buf   strings.Builder
	out   []string
}

func (lx *lexer) emit(r rune) {
	lx.buf.WriteRune(r)
}

func (lx *lexer) flush() {
	if lx.buf.Len() == 0 {
		return
	}
	lx.out = append(lx.out, lx.buf.String())
	lx.buf.Reset()
}

// splitTokens is the strict pass: it understands the full quoting rules and
// fails on unterminated quotes or a trailing escape. Parse falls back to
// lenientSplit when it errors.
func splitTokens(input string) ([]string, error) {
	lx := &lexer{}
	rs := []rune(input)

	for i := 0; i < len(rs); i++ {
		r := rs[i]

		if lx.state.escaped {
			lx.state.escaped = false
			if lx.state.inANSI {
				decoded, err := decodeANSIEscape(rs, &i)
				if err != nil {
					return nil, err
				}
				lx.emit(decoded)
				continue
			}
			if r == '\n' {
				continue // line continuation
			}
			if r == '\r' {
				if i+1 < len(rs) && rs[i+1] == '\n' {
					i++
				}
				continue
			}
			lx.emit(r)
			continue
		}

		switch {
		case lx.state.inANSI:
			switch r {
			case '\\':
				lx.state.escaped = true
			case '\'':
				lx.state.inANSI = false
			default:
				lx.emit(r)
			}
		case r == '\\' && !lx.state.inSingle:
			lx.state.escaped = true
		case r == '\'' && !lx.state.inDouble:
			lx.state.inSingle = !lx.state.inSingle
		case r == '"' && !lx.state.inSingle:
			lx.state.inDouble = !lx.state.inDouble
		case r == '$' && !lx.state.open() && i+1 < len(rs) && rs[i+1] == '\'':
			lx.state.inANSI = true
			i++
		case unicode.IsSpace(r) && !lx.state.open():
			lx.flush()
		default:
			lx.emit(r)
		}
	}

	if lx.state.escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if lx.state.open() {
		return nil, fmt.Errorf("unterminated quoted string")
	}

	lx.flush()
	return lx.out, nil
}

func decodeANSIEscape(rs []rune, i *int) (rune, error) {
	if *i >= len(rs) {
		return 0, fmt.Errorf("unterminated escape sequence")
	}
	switch r := rs[*i]; r {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '0':
		return 0, nil
	case 'x':
		return readHexEscape(rs, i, 2)
	case 'u':
		return readHexEscape(rs, i, 4)
	default:
		return r, nil
	}
}

func readHexEscape(rs []rune, i *int, n int) (rune, error) {
	if *i+n >= len(rs) {
		return 0, fmt.Errorf("invalid hex escape")
	}
	var val rune
	for k := 0; k < n; k++ {
		*i++
		d := hexDigit(rs[*i])
		if d < 0 {
			return 0, fmt.Errorf("invalid hex escape")
		}
		val = val<<4 | rune(d)
	}
	return val, nil
}

func hexDigit(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}

// lenientSplit is the fallback pass: a quote-aware whitespace split that
// never fails. Quotes pair up when balanced and are otherwise kept as
// ordinary characters; there is no escape handling.
func lenientSplit(input string) []string {
	var (
		out     []string
		buf     strings.Builder
		inQuote bool
		quote   rune
	)

	for _, r := range input {
		switch {
		case !inQuote && (r == '"' || r == '\''):
			inQuote = true
			quote = r
		case inQuote && r == quote:
			inQuote = false
			quote = 0
		case unicode.IsSpace(r) && !inQuote:
			if buf.Len() > 0 {
				out = append(out, buf.String())
				buf.Reset()
			}
		default:
			buf.WriteRune(r)
		}
	}
	if buf.Len() > 0 {
		out = append(out, buf.String())
	}
	return out
}
