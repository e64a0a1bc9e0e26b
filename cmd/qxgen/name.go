package main

import (
	"path/filepath"
	"strings"
	"unicode"
)

// packageName derives a package name from the output directory.
func packageName(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == '-' || r == '_' || r == '.':
			return '_'
		}
		return -1
	}, base)
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "p" + name
	}
	return name
}
