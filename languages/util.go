package languages

import "strings"

// SplitLines splits text into lines the way editors number them:
// "\n", "\r\n" and a lone "\r" all end a line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// ByteOffset converts a UTF-16 character offset within line to a byte offset.
// Offsets past the end of the line clamp to len(line).
func ByteOffset(line string, char int) int {
	n := 0
	for i, r := range line {
		if n >= char {
			return i
		}
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return len(line)
}

// LineAt returns line n of text, or "" when n is out of range.
func LineAt(text string, n int) string {
	lines := SplitLines(text)
	if n < 0 || n >= len(lines) {
		return ""
	}
	return lines[n]
}
