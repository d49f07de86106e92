// Package textdiff renders line diffs between two text renderings of a
// document, for round-trip checks and the CLI's check command.
package textdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Lines returns a unified-style line diff between from and to, with
// "-"/"+" markers and unchanged lines prefixed by two spaces. The empty
// string means the inputs are equal.
func Lines(from, to string) string {
	if from == to {
		return ""
	}
	diffCfg := diffpatch.New()
	fromRunes, toRunes, lines := diffCfg.DiffLinesToRunes(from, to)
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)

	var b strings.Builder
	for _, d := range diffs {
		marker := "  "
		switch d.Type {
		case diffpatch.DiffDelete:
			marker = "- "
		case diffpatch.DiffInsert:
			marker = "+ "
		}
		for _, line := range splitLines(d.Text) {
			b.WriteString(marker)
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
