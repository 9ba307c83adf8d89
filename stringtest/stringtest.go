// Package stringtest helps build expected multi-line strings in tests, such
// as rendered frames and YAML documents.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings. Use it for expected
// frame output, whose rows are always LF-separated.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"@@..",
//		"..@@",
//	) // -> "@@..\n..@@"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// Input dedents a raw string literal so it can be indented along with the
// surrounding test code. One leading and one trailing newline are removed,
// the whitespace prefix shared by all non-blank lines is stripped, and
// whitespace-only lines become empty.
//
// Example:
//
//	doc := stringtest.Input(`
//		width: 80
//		braille: true
//	`) // -> "width: 80\nbraille: true"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	prefix, found := "", false

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

		switch {
		case !found:
			prefix, found = indent, true
		default:
			prefix = commonPrefix(prefix, indent)
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:n]
}
