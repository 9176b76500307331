package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndentString(t *testing.T) {
	assert.Equal(t, "  a\n  b", IndentString("a\nb", "  "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10, "..."))
	assert.Equal(t, "hel...", Truncate("hello world", 6, "..."))
	assert.Equal(t, "..", Truncate("hello world", 2, "..."))
	// "ä" is 2 bytes, it must not be split
	assert.Equal(t, "a...", Truncate("aäbcdef", 5, "..."))
}
