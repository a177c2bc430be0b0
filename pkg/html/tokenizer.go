package html

import (
	"strings"
	"unicode"

	xhtml "golang.org/x/net/html"
)

// splitTagBody splits the text between '<' and '>' into the lower-cased tag
// name and its attributes. Tokens are separated by whitespace outside of
// quotes; a quote opens only at the start of a token or right after '=',
// so apostrophes inside bare values do not swallow the rest of the tag.
func splitTagBody(body string) (string, map[string]string) {
	tokens := splitQuoted(body)
	attrs := make(map[string]string)
	if len(tokens) == 0 {
		return "", attrs
	}
	// XHTML style <br/> and <img src=x />
	if last := tokens[len(tokens)-1]; last == "/" {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return "", attrs
	}
	tag := strings.ToLower(tokens[0])
	if !strings.HasPrefix(tag, "/") {
		tag = strings.TrimSuffix(tag, "/")
	}
	for _, tok := range tokens[1:] {
		key, value, found := strings.Cut(tok, "=")
		key = strings.ToLower(key)
		if key == "" {
			continue
		}
		if !found {
			attrs[key] = ""
			continue
		}
		attrs[key] = xhtml.UnescapeString(unquote(value))
	}
	return tag, attrs
}

func splitQuoted(s string) []string {
	var (
		tokens []string
		cur    strings.Builder
		quote  rune
		prev   rune
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case unicode.IsSpace(r):
			flush()
		case (r == '"' || r == '\'') && (cur.Len() == 0 || prev == '='):
			quote = r
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
		prev = r
	}
	flush()
	return tokens
}

// unquote strips one pair of enclosing quotes. An unterminated quote only
// loses its opening character.
func unquote(v string) string {
	if v == "" {
		return v
	}
	q := v[0]
	if q != '"' && q != '\'' {
		return v
	}
	v = v[1:]
	if n := len(v); n > 0 && v[n-1] == q {
		v = v[:n-1]
	}
	return v
}

// opensQuote reports whether a quote character seen while scanning a tag
// starts a quoted attribute value, given the tag text accumulated so far.
// Comments and doctypes have no attributes.
func opensQuote(sofar string) bool {
	if sofar == "" || sofar[0] == '!' {
		return false
	}
	last := sofar[len(sofar)-1]
	return last == '=' || last == ' ' || last == '\t' || last == '\n' || last == '\r'
}

// indexCloseTag finds "</name" in s, ignoring ASCII case.
func indexCloseTag(s, name string) int {
	needle := "</" + name
	for i := 0; i+len(needle) <= len(s); i++ {
		if s[i] == '<' && strings.EqualFold(s[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}
