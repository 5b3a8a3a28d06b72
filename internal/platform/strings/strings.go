// Package strings provides string and string slice helpers
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// Deref returns "" if ps is nil, else *ps.
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}

// TruncateUTF8 returns s truncated to at most max bytes, backing up to a
// UTF-8 boundary if needed, and appending an ellipsis if truncated
func TruncateUTF8(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	i := max
	// back up to the start of a rune (0b10xxxxxx indicates continuation byte)
	for i > 0 && (s[i]&0xC0) == 0x80 {
		i--
	}
	if i <= 0 {
		i = max
	}
	return s[:i] + "..."
}
