package langdef

import "unicode"

const zeroWidthJoiner = '‍'

// IsWordRune reports whether r can continue an identifier-like word run.
// Besides letters, digits and '_' this admits marks and non-ASCII symbols
// so emoji spellings lex as a single word.
func IsWordRune(r rune) bool {
	switch {
	case r == '_':
		return true
	case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
		return true
	case r < 0x80:
		return false
	case r == zeroWidthJoiner, unicode.IsSymbol(r):
		return true
	}
	return false
}

func IsWordStart(r rune) bool {
	return IsWordRune(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
}

// IsWord reports whether s lexes as exactly one word run.
func IsWord(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !IsWordStart(r) {
			return false
		}
		if !IsWordRune(r) {
			return false
		}
	}
	return true
}

// IsNumeric reports whether s has the shape digits[.digits].
func IsNumeric(s string) bool {
	i, n := 0, len(s)
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return false
	}
	if i == n {
		return true
	}
	if s[i] != '.' {
		return false
	}
	i++
	j := i
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > j && i == n
}
