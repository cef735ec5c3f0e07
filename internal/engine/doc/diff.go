package doc

// Diff computes the single edit that rewrites old into new, by trimming
// the longest common prefix and suffix. The second return is false when
// the texts are identical.
//
// A prefix/suffix diff cannot recover multiple disjoint edits from one
// comparison; callers that need finer steps must capture edits at the
// source. For a file-watching driver that only sees before/after text,
// one replace per change is exactly the positional information available.
func Diff(old, new string) (Edit, bool) {
	if old == new {
		return Edit{}, false
	}

	prefix := commonPrefix(old, new)

	// The suffix must not overlap the prefix.
	suffix := commonSuffix(old[prefix:], new[prefix:])

	return Edit{
		Range:   Range{Start: Position(prefix), End: Position(len(old) - suffix)},
		NewText: new[prefix : len(new)-suffix],
	}, true
}

// commonPrefix returns the length of the longest common prefix, backed
// off to a rune boundary so the edit never splits a UTF-8 sequence.
func commonPrefix(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	for i > 0 && (splitsRune(a, i) || splitsRune(b, i)) {
		i--
	}
	return i
}

// commonSuffix returns the length of the longest common suffix, backed
// off to a rune boundary.
func commonSuffix(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	for i > 0 && (splitsRune(a, len(a)-i) || splitsRune(b, len(b)-i)) {
		i--
	}
	return i
}

// splitsRune reports whether cutting s at index i would split a UTF-8
// sequence.
func splitsRune(s string, i int) bool {
	return i < len(s) && s[i]&0xC0 == 0x80
}
