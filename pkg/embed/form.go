package embed

import (
	"html"
	"regexp"
	"strings"
)

// FormOptions adjust a form's iframe. Sizes that are not plain CSS lengths
// and class names with characters outside [A-Za-z0-9_-] are ignored.
type FormOptions struct {
	Height      string // replaces or adds the height attribute
	Width       string // replaces or adds the width attribute
	Class       string // extra CSS class after "pardotform"
	QueryString string // appended to the iframe src, without leading "?"
}

var (
	heightAttr = regexp.MustCompile(`\sheight="[^"]*"`)
	widthAttr  = regexp.MustCompile(`\swidth="[^"]*"`)
	srcAttr    = regexp.MustCompile(`(\s)src="([^"]+)"`)
)

// FormHTML applies opts to a form embed code.
func FormHTML(embedCode string, opts FormOptions) string {
	if embedCode == "" {
		return ""
	}
	out := embedCode
	out = setAttr(out, heightAttr, "height", sizeValue(opts.Height))
	out = setAttr(out, widthAttr, "width", sizeValue(opts.Width))

	class := "pardotform"
	if extra := classValue(opts.Class); extra != "" {
		class += " " + extra
	}
	out = strings.Replace(out, "<iframe", `<iframe class="`+class+`"`, 1)

	if qs := strings.TrimPrefix(opts.QueryString, "?"); qs != "" {
		qs = html.EscapeString(qs)
		out = srcAttr.ReplaceAllStringFunc(out, func(m string) string {
			sub := srcAttr.FindStringSubmatch(m)
			src := sub[2]
			sep := "?"
			if strings.Contains(src, "?") {
				sep = "&"
			}
			return sub[1] + `src="` + src + sep + qs + `"`
		})
	}
	return out
}

// setAttr replaces the first attr="..." or inserts it after "<iframe".
func setAttr(code string, re *regexp.Regexp, name, value string) string {
	if value == "" {
		return code
	}
	attr := name + `="` + value + `"`
	if loc := re.FindStringIndex(code); loc != nil {
		// keep the whitespace matched before the name
		return code[:loc[0]+1] + attr + code[loc[1]:]
	}
	return strings.Replace(code, "<iframe", "<iframe "+attr, 1)
}
