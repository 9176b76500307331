package stringutils

import "strings"

// IndentString prefixes each line of the string with indent.
func IndentString(str, indent string) string {
	spl := strings.SplitAfter(str, "\n")
	return strings.Join(append([]string{""}, spl...), indent)
}

// Truncate shortens str to at most maxBytes bytes.
// If it is shortened, the last bytes are replaced with suffix.
// The result never ends in a partial UTF-8 sequence.
func Truncate(str string, maxBytes int, suffix string) string {
	if len(str) <= maxBytes {
		return str
	}

	if maxBytes <= len(suffix) {
		return suffix[:maxBytes]
	}

	cut := maxBytes - len(suffix)
	// step back to the start of a rune
	for cut > 0 && !isRuneStart(str[cut]) {
		cut--
	}

	return str[:cut] + suffix
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
