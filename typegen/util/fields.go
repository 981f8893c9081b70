package util

import (
	"go/ast"
	"strings"
)

// CommentLines returns the text of the first non-empty group, one entry per
// line. Doc comments are passed before inline comments so they win.
// Directive lines (//shapeshare:..., //go:...) are not included.
func CommentLines(groups ...*ast.CommentGroup) []string {
	for _, g := range groups {
		if g == nil {
			continue
		}
		text := strings.TrimRight(g.Text(), "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		for i, l := range lines {
			lines[i] = CleanCommentText(l)
		}
		return lines
	}
	return nil
}

// CleanCommentText removes comment markers and trims whitespace
func CleanCommentText(text string) string {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return strings.TrimSpace(text)
}

// Directives returns the values of //<prefix>:<value> lines in the groups.
func Directives(prefix string, groups ...*ast.CommentGroup) []string {
	var out []string
	marker := "//" + prefix + ":"
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			if v, ok := strings.CutPrefix(c.Text, marker); ok {
				out = append(out, strings.TrimSpace(v))
			}
		}
	}
	return out
}
