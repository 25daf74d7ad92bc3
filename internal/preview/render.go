package preview

import (
	"html"
	"strings"

	"pageforge.app/planner/internal/plan"
)

// suppressCSS hides elements the generator tagged as preview-only noise
// (debug navigation, scaffolding). Injected on /preview, omitted on /page.
const suppressCSS = "<style>[data-preview-hide]{display:none !important}</style>"

// Pick chooses the file to preview: the first HTML file, falling back to
// the first file overall.
func Pick(files []plan.GeneratedFile) (plan.GeneratedFile, bool) {
	if len(files) == 0 {
		return plan.GeneratedFile{}, false
	}
	for _, f := range files {
		if strings.HasSuffix(strings.ToLower(f.Path), ".html") {
			return f, true
		}
	}
	return files[0], true
}

// Render wraps a generated file in a browser-displayable document.
// HTML files are served as-is (plus the suppression stylesheet when
// hideSuppressed is set); anything else is shown as highlighted source.
func Render(f plan.GeneratedFile, hideSuppressed bool) string {
	if strings.HasSuffix(strings.ToLower(f.Path), ".html") {
		doc := f.Contents
		if hideSuppressed {
			doc = injectHead(doc, suppressCSS)
		}
		return doc
	}

	var b strings.Builder
	b.WriteString("<!doctype html>\n<html>\n<head><title>")
	b.WriteString(html.EscapeString(f.Path))
	b.WriteString("</title></head>\n<body>\n<p><code>")
	b.WriteString(html.EscapeString(f.Path))
	b.WriteString("</code></p>\n<pre><code>")
	b.WriteString(html.EscapeString(f.Contents))
	b.WriteString("</code></pre>\n</body>\n</html>\n")
	return b.String()
}

// injectHead inserts a fragment after <head> when present, otherwise
// prepends it so the stylesheet still applies.
func injectHead(doc, fragment string) string {
	lower := strings.ToLower(doc)
	if i := strings.Index(lower, "<head>"); i >= 0 {
		at := i + len("<head>")
		return doc[:at] + fragment + doc[at:]
	}
	return fragment + doc
}
