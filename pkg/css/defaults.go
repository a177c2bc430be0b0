package css

import (
	_ "embed"
	"sync"
)

//go:embed browser.css
var browserCSS string

var (
	defaultOnce  sync.Once
	defaultRules []Rule
)

// DefaultStyleSheet returns the user-agent rules applied before page styles.
// Callers must not modify the returned slice.
func DefaultStyleSheet() []Rule {
	defaultOnce.Do(func() {
		defaultRules = ParseStyleSheet(browserCSS)
	})
	return defaultRules
}
