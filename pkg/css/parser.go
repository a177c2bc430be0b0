package css

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Rule is a selector with the declarations it applies, in source order.
type Rule struct {
	Selector     Selector
	Declarations map[string]string // property -> raw value
}

// Parser parses stylesheets. Malformed rules and declarations are skipped
// and logged at debug level, never returned as errors.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// ParseStyleSheet parses CSS text with a silent parser.
func ParseStyleSheet(text string) []Rule {
	return NewParser(nil).Parse(text)
}

// ParseDeclarations parses a bare declaration block such as the value of a
// style attribute.
func ParseDeclarations(text string) map[string]string {
	return NewParser(nil).ParseDeclarations(text)
}

// Parse parses CSS text into rules. The result is never nil.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(text string, source ...string) []Rule {
	log := p.log
	if len(source) > 0 && source[0] != "" {
		log = log.With(zap.String("source", source[0]))
	}

	sc := &scanner{s: text}
	rules := make([]Rule, 0)
	sc.whitespace()
	for !sc.eof() {
		rule, err := sc.rule(log)
		if err == nil {
			rules = append(rules, rule)
			continue
		}
		log.Debug("Skipping malformed rule", zap.Error(err))
		if _, ok := sc.ignoreUntil("}"); !ok {
			break
		}
		sc.i++
		sc.whitespace()
	}
	log.Debug("Parsed stylesheet", zap.Int("bytes", len(text)), zap.Int("rules", len(rules)))
	return rules
}

func (p *Parser) ParseDeclarations(text string) map[string]string {
	sc := &scanner{s: text}
	sc.whitespace()
	return sc.body(p.log)
}

type syntaxError struct {
	pos  int
	want string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("expected %s at offset %d", e.want, e.pos)
}

// scanner is a recursive-descent reader over one stylesheet.
type scanner struct {
	s string
	i int
}

func (sc *scanner) eof() bool {
	return sc.i >= len(sc.s)
}

// whitespace skips blanks and /* */ comments.
func (sc *scanner) whitespace() {
	for !sc.eof() {
		switch {
		case isSpace(sc.s[sc.i]):
			sc.i++
		case strings.HasPrefix(sc.s[sc.i:], "/*"):
			end := strings.Index(sc.s[sc.i+2:], "*/")
			if end < 0 {
				sc.i = len(sc.s)
				return
			}
			sc.i += end + 4
		default:
			return
		}
	}
}

func (sc *scanner) word() (string, error) {
	start := sc.i
	for !sc.eof() {
		r, size := utf8.DecodeRuneInString(sc.s[sc.i:])
		if !isWordRune(r) {
			break
		}
		sc.i += size
	}
	if sc.i == start {
		return "", &syntaxError{pos: sc.i, want: "word"}
	}
	return sc.s[start:sc.i], nil
}

func (sc *scanner) literal(c byte) error {
	if sc.eof() || sc.s[sc.i] != c {
		return &syntaxError{pos: sc.i, want: fmt.Sprintf("%q", c)}
	}
	sc.i++
	return nil
}

func (sc *scanner) pair() (string, string, error) {
	prop, err := sc.word()
	if err != nil {
		return "", "", err
	}
	sc.whitespace()
	if err := sc.literal(':'); err != nil {
		return "", "", err
	}
	sc.whitespace()
	val, err := sc.word()
	if err != nil {
		return "", "", err
	}
	return strings.ToLower(prop), val, nil
}

// ignoreUntil advances to the first byte in chars and returns it. At end of
// input it reports false.
func (sc *scanner) ignoreUntil(chars string) (byte, bool) {
	for !sc.eof() {
		if c := sc.s[sc.i]; strings.IndexByte(chars, c) >= 0 {
			return c, true
		}
		sc.i++
	}
	return 0, false
}

// body parses declarations up to (not including) the closing brace.
func (sc *scanner) body(log *zap.Logger) map[string]string {
	decls := make(map[string]string)
	for !sc.eof() && sc.s[sc.i] != '}' {
		prop, val, err := sc.pair()
		if err == nil {
			sc.whitespace()
			// a final declaration may omit its semicolon
			if sc.eof() || sc.s[sc.i] == '}' {
				decls[prop] = val
				break
			}
			if err = sc.literal(';'); err == nil {
				decls[prop] = val
				sc.whitespace()
				continue
			}
		}
		log.Debug("Skipping malformed declaration", zap.Error(err))
		c, ok := sc.ignoreUntil(";}")
		if !ok || c == '}' {
			break
		}
		sc.i++
		sc.whitespace()
	}
	return decls
}

// selector reads whitespace separated tag words up to '{' and folds them
// left into descendant selectors.
func (sc *scanner) selector() (Selector, error) {
	tag, err := sc.word()
	if err != nil {
		return nil, err
	}
	var out Selector = TagSelector{Tag: strings.ToLower(tag)}
	sc.whitespace()
	for !sc.eof() && sc.s[sc.i] != '{' {
		tag, err := sc.word()
		if err != nil {
			return nil, err
		}
		out = DescendantSelector{Ancestor: out, Descendant: TagSelector{Tag: strings.ToLower(tag)}}
		sc.whitespace()
	}
	return out, nil
}

func (sc *scanner) rule(log *zap.Logger) (Rule, error) {
	sel, err := sc.selector()
	if err != nil {
		return Rule{}, err
	}
	if err := sc.literal('{'); err != nil {
		return Rule{}, err
	}
	sc.whitespace()
	decls := sc.body(log)
	if err := sc.literal('}'); err != nil {
		return Rule{}, err
	}
	sc.whitespace()
	return Rule{Selector: sel, Declarations: decls}, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("#-.%", r)
}
