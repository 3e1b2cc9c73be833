// Package highlight colours response bodies for the terminal and offers
// the pretty-print helper used by the editor's JSON body tab.
package highlight

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/muesli/termenv"
)

const chromaStyle = "monokai"

// formatterForProfile maps the detected terminal colour capability to a
// chroma formatter name. A colourless terminal gets the body untouched.
func formatterForProfile(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return ""
	}
}

// Body highlights a response body according to its content type. Anything
// that is not recognizably JSON, XML, or HTML comes back unchanged, as does
// everything when highlighting fails or the terminal has no colour support.
func Body(body, contentType string) string {
	lexer := lexerForContentType(contentType, body)
	if lexer == "" {
		return body
	}
	formatter := formatterForProfile(termenv.ColorProfile())
	if formatter == "" {
		return body
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, body, lexer, formatter, chromaStyle); err != nil {
		return body
	}
	return buf.String()
}

func lexerForContentType(contentType, body string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return "json"
	case strings.Contains(ct, "xml"):
		return "xml"
	case strings.Contains(ct, "html"):
		return "html"
	}

	// content sniff for servers that lie about text/plain
	trimmed := strings.TrimSpace(body)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if json.Valid([]byte(trimmed)) {
			return "json"
		}
	}
	return ""
}

// PrettyJSON re-indents a JSON document, preserving key order and number
// formatting. The second return reports whether the input was valid JSON;
// invalid input comes back unchanged.
func PrettyJSON(text string) (string, bool) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(text)), "", "  "); err != nil {
		return text, false
	}
	return buf.String(), true
}
