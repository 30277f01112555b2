// File: pkg/combine/document.go
package combine

import (
	"fmt"
	"strings"
)

// Markers wrapping the two halves of the combined document.
const (
	treeOpenTag      = "<project-tree>"
	treeCloseTag     = "</project-tree>"
	codebaseOpenTag  = "<codebase>"
	codebaseCloseTag = "</codebase>"
)

// RenderDocument assembles the combined document: the directory tree inside
// its markers, then every file section under a "=== path ===" header inside
// the codebase container.
func RenderDocument(treeListing string, sections []FileSection) string {
	var b strings.Builder

	b.WriteString(treeOpenTag + "\n")
	b.WriteString(treeListing + "\n")
	b.WriteString(treeCloseTag + "\n")
	b.WriteString(codebaseOpenTag + "\n")
	for _, section := range sections {
		fmt.Fprintf(&b, "\n=== %s ===\n\n%s", section.Path, section.Content)
	}
	b.WriteString("\n" + codebaseCloseTag)

	return b.String()
}
