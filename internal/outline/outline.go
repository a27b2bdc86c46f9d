// Package outline converts a heading-based markdown digest into an
// outline note made only of nested bullets.
package outline

import (
	"regexp"
	"strings"
)

const (
	// Indent is one level of bullet nesting.
	Indent = "    "

	headerType = "type:: [[Hacker News Daily]]"
	headerTags = "tags:: Hacker News"
)

// frontmatter matches the first ---/--- block at the very start of the text.
var frontmatter = regexp.MustCompile(`(?s)\A---\r?\n(?:.*?\r?\n)?---(?:\r?\n|\z)`)

// state is the kind of the last heading bullet emitted.
type state int

const (
	afterSection    state = iota // start of document or a "## " bullet
	afterSubsection              // a "### " bullet
)

// bodyDepth is the nesting depth of a body line emitted in state s.
func (s state) bodyDepth() int {
	if s == afterSubsection {
		return 2
	}
	return 1
}

// StripFrontmatter removes a leading frontmatter block and trims the rest.
func StripFrontmatter(raw string) string {
	if loc := frontmatter.FindStringIndex(raw); loc != nil {
		raw = raw[loc[1]:]
	}
	return strings.TrimSpace(raw)
}

// Transform converts raw digest markdown into the outline format.
// It never fails: lines it does not recognise become body bullets.
func Transform(raw string) string {
	lines := strings.Split(StripFrontmatter(raw), "\n")

	out := make([]string, 0, len(lines)+3)
	out = append(out, headerType, headerTags, "")

	st := afterSection
	for _, l := range lines {
		line := strings.TrimSpace(l)
		switch {
		case line == "":
			continue
		case isHTMLHead(line):
			continue
		case strings.HasPrefix(line, "### "):
			out = append(out, bullet(1, strings.TrimPrefix(line, "### ")))
			st = afterSubsection
		case strings.HasPrefix(line, "## "):
			out = append(out, bullet(0, line))
			st = afterSection
		case strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "##"):
			continue
		default:
			out = append(out, bullet(st.bodyDepth(), unquote(line)))
		}
	}

	return strings.Join(out, "\n")
}

func isHTMLHead(line string) bool {
	return strings.HasPrefix(line, "<head>") ||
		strings.HasPrefix(line, "</head>") ||
		strings.HasPrefix(line, "<meta")
}

func bullet(depth int, text string) string {
	return strings.Repeat(Indent, depth) + "- " + text
}

// unquote strips one pair of wrapping double quotes when the line has no
// other quote characters.
func unquote(line string) string {
	if len(line) < 2 || line[0] != '"' || line[len(line)-1] != '"' {
		return line
	}
	inner := line[1 : len(line)-1]
	if strings.Contains(inner, `"`) {
		return line
	}
	return inner
}
