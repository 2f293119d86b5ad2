package rag

import (
	"fmt"
	"strings"
)

// FallbackSource is cited when a retrieved chunk carries no source metadata.
const FallbackSource = "kb"

// FormatDocs renders retrieved chunks into one annotated context block.
// Each chunk becomes "[<source>] <text>", with a trim-count note appended
// when the vehicle has mapped trims. Retriever order and duplicates pass
// through unchanged.
func FormatDocs(chunks []Chunk) string {
	blocks := make([]string, 0, len(chunks))
	for _, c := range chunks {
		src := c.Metadata.Source(FallbackSource)
		content := strings.TrimSpace(c.Text)
		if n := c.Metadata.TrimCount(); n > 0 {
			content += fmt.Sprintf("\n(This vehicle has %d Cox trim(s) mapped)", n)
		}
		blocks = append(blocks, "["+src+"] "+content)
	}
	return strings.Join(blocks, "\n\n")
}
