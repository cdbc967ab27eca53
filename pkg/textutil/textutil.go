// Package textutil provides the pure text transforms used by the
// conversion pipeline: slug generation, srcset candidate selection,
// YAML and fence info-string escaping, front-matter stripping, and
// whitespace normalization.
package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugGaps     = regexp.MustCompile(`[\s-]+`)
)

// Slugify converts heading text into a URL-safe anchor slug.
// Characters outside [a-z0-9] are dropped, runs of whitespace and
// hyphens collapse to a single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = slugGaps.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-")
}

// BestSrcFromSrcset picks the best candidate URL from a srcset value.
// Candidates are scored by their width (`640w`) or pixel-density (`2x`)
// descriptor; the highest score wins and ties prefer the first-listed
// candidate. Returns "" when no candidate has a URL.
func BestSrcFromSrcset(srcset string) string {
	best := ""
	bestScore := -1.0

	for _, cand := range strings.Split(srcset, ",") {
		fields := strings.Fields(strings.TrimSpace(cand))
		if len(fields) == 0 || fields[0] == "" {
			continue
		}
		score := 1.0
		if len(fields) > 1 {
			desc := strings.ToLower(fields[1])
			if v, err := strconv.ParseFloat(strings.TrimRight(desc, "wx"), 64); err == nil {
				score = v
			}
		}
		if score > bestScore {
			best = fields[0]
			bestScore = score
		}
	}
	return best
}

var yamlEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// EscapeYAML escapes a free-text value for use inside a double-quoted
// YAML scalar.
func EscapeYAML(s string) string {
	return yamlEscaper.Replace(s)
}

var infoStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
)

// EscapeInfoString escapes a code-block title for use inside the
// quoted part of a fence info string.
func EscapeInfoString(s string) string {
	return infoStringEscaper.Replace(s)
}

var frontMatterBlock = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n.*?\r?\n---[ \t]*(\r?\n|\z)`)

// StripFrontMatter removes a leading YAML front-matter block from a
// Markdown document. The second return reports whether a block was
// found; when it is false the input is returned unchanged.
func StripFrontMatter(md string) (string, bool) {
	loc := frontMatterBlock.FindStringIndex(md)
	if loc == nil {
		return md, false
	}
	return strings.TrimLeft(md[loc[1]:], "\r\n"), true
}

// TrimFencePadding removes leading and trailing blank lines from raw
// code-block text and normalizes CRLF line endings. Interior blank
// lines are preserved.
func TrimFencePadding(code string) string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	lines := strings.Split(code, "\n")

	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

var quoteNormalizer = strings.NewReplacer(
	"‘", "'", // left single
	"’", "'", // right single / apostrophe
	"‚", "'",
	"“", `"`, // left double
	"”", `"`, // right double
	"„", `"`,
)

// NormalizeQuotes replaces smart quotes and apostrophes with their
// straight ASCII equivalents.
func NormalizeQuotes(s string) string {
	return quoteNormalizer.Replace(s)
}

// NormalizeSpaces replaces non-breaking spaces with regular spaces.
func NormalizeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", " ")
}

var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// CollapseBlankLines reduces runs of three or more newlines to a
// single blank line.
func CollapseBlankLines(s string) string {
	return excessBlankLines.ReplaceAllString(s, "\n\n")
}

// CollapseWhitespace reduces all interior whitespace runs to single
// spaces and trims the result.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
