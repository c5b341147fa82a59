// Package gutter provides the line math behind the editor's line-number
// column and status line.
package gutter

import "strings"

// Count returns the number of newline-delimited segments in text, never
// less than 1. It is recomputed on every buffer change.
func Count(text string) int {
	return strings.Count(text, "\n") + 1
}

// Width returns the digit width needed to render line numbers up to n.
func Width(n int) int {
	if n < 1 {
		n = 1
	}
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}
	return w
}
