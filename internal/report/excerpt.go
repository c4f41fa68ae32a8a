package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

// Excerpt renders a source line with a gutter and, when a column span
// is known, a caret/underline marker under the faulting bytes:
//
//	   3 | y = cost(x)
//	     |     ^~~~
//
// Columns are 1-based bytes; colEnd is exclusive. A zero span yields
// the bare line. Marker alignment is computed on display width, so
// tabs and wide runes do not skew the caret.
func Excerpt(line uint32, lineText string, colStart, colEnd uint32) string {
	if lineText == "" {
		return ""
	}

	gutter := fmt.Sprintf("%4d | ", line)
	var b strings.Builder
	b.WriteString(gutter)
	b.WriteString(expandTabs(lineText))
	b.WriteString("\n")

	if colStart > 0 && colEnd > colStart && int(colStart) <= len(lineText)+1 {
		end := colEnd
		if int(end) > len(lineText)+1 {
			end = uint32(len(lineText)) + 1
		}
		prefix := runewidth.StringWidth(expandTabs(lineText[:colStart-1]))
		marked := runewidth.StringWidth(expandTabs(lineText[colStart-1 : end-1]))
		if marked < 1 {
			marked = 1
		}

		b.WriteString(strings.Repeat(" ", len(gutter)-2))
		b.WriteString("| ")
		b.WriteString(strings.Repeat(" ", prefix))
		b.WriteString("^")
		if marked > 1 {
			b.WriteString(strings.Repeat("~", marked-1))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
