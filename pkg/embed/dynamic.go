package embed

import (
	"html"
	"strings"
)

// DynamicContentOptions adjust a dynamic-content placeholder.
type DynamicContentOptions struct {
	Height  string // default "auto"
	Width   string // default "auto"
	Class   string // default "pardotdc"
	Default string // inner HTML shown until the content loads
}

// DynamicContentHTML returns the placeholder div for a dynamic-content URL.
// Invalid sizes and class names fall back to the defaults. Default is
// inserted as given; it is the caller's HTML.
func DynamicContentHTML(url string, opts DynamicContentOptions) string {
	if url == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div data-dc-url="`)
	b.WriteString(html.EscapeString(url))
	b.WriteString(`" style="height:`)
	b.WriteString(orDefault(sizeValue(opts.Height), "auto"))
	b.WriteString(`;width:`)
	b.WriteString(orDefault(sizeValue(opts.Width), "auto"))
	b.WriteString(`;" class="`)
	b.WriteString(orDefault(classValue(opts.Class), "pardotdc"))
	b.WriteString(`">`)
	b.WriteString(opts.Default)
	b.WriteString(`</div>`)
	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
