// Package outline turns indented bullet text into mind-map nodes.
//
// [Parse] reads a plain-text outline:
//
//	- Project
//	  - Goals
//	    * Ship v1
//	  - Risks
//
// Bullets are "-", "*" or "+". Tabs count as two spaces and every two
// leading spaces add one nesting level. A line without a bullet continues
// the previous item's text. [Build] converts the parsed items into nodes and
// connecting edges that can be merged into a snapshot.
package outline

import (
	"strings"
)

// Item is one bullet of an outline.
type Item struct {
	Text     string  `json:"text"`
	Children []*Item `json:"children,omitempty"`
}

// Count returns the number of items in the subtree rooted at it.
func (it *Item) Count() int {
	n := 1
	for _, c := range it.Children {
		n += c.Count()
	}
	return n
}

// Parse parses outline text into a forest of items. Text without any
// bullet line yields no items.
func Parse(text string) []*Item {
	type frame struct {
		level int
		item  *Item
	}
	var (
		roots []*Item
		stack []frame
		last  *Item
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		spaces, rest := indent(line)
		content, ok := bullet(rest)
		if !ok {
			if last != nil {
				last.Text = joinText(last.Text, strings.TrimSpace(rest))
			}
			continue
		}

		item := &Item{Text: content}
		level := spaces / 2
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, item)
		} else {
			parent := stack[len(stack)-1].item
			parent.Children = append(parent.Children, item)
		}
		stack = append(stack, frame{level: level, item: item})
		last = item
	}
	return roots
}

// indent counts leading whitespace with tabs worth two spaces.
func indent(line string) (int, string) {
	n := 0
	for i, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 2
		default:
			return n, line[i:]
		}
	}
	return n, ""
}

// bullet strips a leading "-", "*" or "+" marker. The marker must be
// followed by whitespace or end the line.
func bullet(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	switch s[0] {
	case '-', '*', '+':
	default:
		return "", false
	}
	if len(s) > 1 && s[1] != ' ' && s[1] != '\t' {
		return "", false
	}
	return strings.TrimSpace(s[1:]), true
}

func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
