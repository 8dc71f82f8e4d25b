// Package compare reports drift between a fetched body and a local baseline
// copy of it.
package compare

import (
	"fmt"
	"io"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Chunk is a single change between baseline and fetched content.
type Chunk struct {
	// Type is "added" or "removed".
	Type string `json:"type"`

	// Content is the changed text.
	Content string `json:"content"`
}

// Result summarizes the differences between baseline and fetched content.
type Result struct {
	Changed bool    `json:"changed"`
	Chunks  []Chunk `json:"chunks,omitempty"`
}

// Diff computes the change chunks between a baseline and the freshly fetched
// head content. Diffing runs at the character level with semantic cleanup so
// chunks stay readable.
func Diff(base, head []byte) Result {
	dmp := diffmatchpatch.New()

	diffs := dmp.DiffMain(string(base), string(head), true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var chunks []Chunk
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			chunks = append(chunks, Chunk{Type: "added", Content: d.Text})
		case diffmatchpatch.DiffDelete:
			chunks = append(chunks, Chunk{Type: "removed", Content: d.Text})
		}
	}

	return Result{
		Changed: len(chunks) > 0,
		Chunks:  chunks,
	}
}

// Render writes a human-readable listing of the change chunks to w.
func Render(w io.Writer, res Result) error {
	if !res.Changed {
		_, err := fmt.Fprintln(w, "no changes")
		return err
	}
	for _, c := range res.Chunks {
		marker := "+"
		if c.Type == "removed" {
			marker = "-"
		}
		if _, err := fmt.Fprintf(w, "%s %q\n", marker, c.Content); err != nil {
			return err
		}
	}
	return nil
}
