package pipeline

import (
	"strings"

	"github.com/Aias/page-to-markdown/pkg/textutil"
)

// PostProcess normalizes rendered Markdown: smart quotes and
// non-breaking spaces become their plain equivalents, every line is
// right-trimmed, runs of blank lines collapse to one, and the whole
// string is trimmed. Idempotent: applying it twice yields the same
// output.
func PostProcess(markdown string) string {
	s := textutil.NormalizeQuotes(markdown)
	s = textutil.NormalizeSpaces(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")

	s = textutil.CollapseBlankLines(s)
	return strings.TrimSpace(s)
}
