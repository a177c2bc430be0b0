package main

import (
	"fmt"
	"path/filepath"
	"strings"
)

// sourceURL turns what the user typed into a URL. Bare host names get
// https, existing local paths become file URLs.
func sourceURL(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty address")
	}
	if strings.Contains(s, "://") || strings.HasPrefix(s, "data:") {
		return s, nil
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, ".") {
		abs, err := filepath.Abs(s)
		if err != nil {
			return "", err
		}
		return "file://" + filepath.ToSlash(abs), nil
	}
	return "https://" + s, nil
}
