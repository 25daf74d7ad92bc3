package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// snippetCap bounds each context snippet sent to the model.
const snippetCap = 2000

// ProjectContext is the caller-supplied view of the target project: a
// manifest describing the stack, a (truncated) file tree, and named source
// snippets.
type ProjectContext struct {
	Manifest map[string]any    `json:"manifest"`
	Tree     []string          `json:"tree"`
	Snippets map[string]string `json:"snippets"`
}

var defaultManifest = map[string]any{
	"framework":  "next",
	"router":     "app",
	"typescript": true,
	"tailwind":   true,
}

// BuildPayload assembles the user-turn text for a planning or codegen call:
// manifest, file tree, snippets, then the task itself.
func BuildPayload(task string, project ProjectContext) string {
	manifest := project.Manifest
	if len(manifest) == 0 {
		manifest = defaultManifest
	}
	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		manifestJSON = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("PROJECT_MANIFEST:\n")
	b.Write(manifestJSON)
	b.WriteString("\nFILE_TREE (truncated):\n")
	b.WriteString(strings.Join(project.Tree, "\n"))
	b.WriteString("\nSNIPPETS:\n")

	names := make([]string, 0, len(project.Snippets))
	for name := range project.Snippets {
		names = append(names, name)
	}
	sort.Strings(names)

	snippets := make([]string, 0, len(names))
	for _, name := range names {
		body := project.Snippets[name]
		if len(body) > snippetCap {
			body = body[:snippetCap]
		}
		snippets = append(snippets, fmt.Sprintf("%s:\n%s", name, body))
	}
	b.WriteString(strings.Join(snippets, "\n\n"))

	b.WriteString("\n\nTASK:\n")
	b.WriteString(task)
	return b.String()
}
