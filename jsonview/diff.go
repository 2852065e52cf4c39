package jsonview

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/mkhub/ir"
)

// Diff returns a line diff from before to after. Removed lines start with
// "-", added lines with "+" and unchanged lines with a space. It returns ""
// when the texts are equal.
func Diff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	out := &strings.Builder{}
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			prefix = " "
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			out.WriteString(prefix)
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// DiffNodes diffs the indented JSON projections of two nodes.
func DiffNodes(before, after *ir.Node) (string, error) {
	b, err := ToJSONIndent(before)
	if err != nil {
		return "", err
	}
	a, err := ToJSONIndent(after)
	if err != nil {
		return "", err
	}
	return Diff(string(b)+"\n", string(a)+"\n"), nil
}
