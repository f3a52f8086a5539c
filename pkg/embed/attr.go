package embed

import (
	"regexp"
	"strings"
)

var (
	sizePattern  = regexp.MustCompile(`^(auto|\d+(\.\d+)?(px|%|em|rem|vh|vw)?)$`)
	classPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// sizeValue returns v if it is a plain CSS length, otherwise "".
func sizeValue(v string) string {
	v = strings.TrimSpace(v)
	if !sizePattern.MatchString(v) {
		return ""
	}
	return v
}

// classValue keeps the valid class names of v.
func classValue(v string) string {
	var names []string
	for _, name := range strings.Fields(v) {
		if classPattern.MatchString(name) {
			names = append(names, name)
		}
	}
	return strings.Join(names, " ")
}
