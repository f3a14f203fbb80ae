package sync

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	diffRemove = color.New(color.FgRed).SprintFunc()
	diffInsert = color.New(color.FgGreen).SprintFunc()
)

// UnifiedDiff renders a line-prefixed local-vs-remote diff for the conflict
// prompt: local-only text as `- `, remote-only as `+ `, shared as two spaces.
// Color is applied only when stdout is a terminal (fatih/color handles that).
func UnifiedDiff(local, remote string) string {
	dmp := diffmatchpatch.New()
	localChars, remoteChars, lines := dmp.DiffLinesToChars(local, remote)
	diffs := dmp.DiffMain(localChars, remoteChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var b strings.Builder
	for _, d := range diffs {
		for _, line := range splitDiffLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				b.WriteString(diffRemove("- " + line))
			case diffmatchpatch.DiffInsert:
				b.WriteString(diffInsert("+ " + line))
			default:
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func splitDiffLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
