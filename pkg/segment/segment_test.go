package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit_NoSeparator(t *testing.T) {
	t.Parallel()

	got := Split("just one block\n", DefaultSeparator)

	assert.Equal(t, []string{"just one block\n"}, got)
}

func TestSplit_OrderedCandidates(t *testing.T) {
	t.Parallel()

	got := Split("// header\n---\nfoo\n---\n// only comment\n", DefaultSeparator)

	assert.Equal(t, []string{"// header\n", "\nfoo\n", "\n// only comment\n"}, got)
}

func TestSplit_ExactMatchOnly(t *testing.T) {
	t.Parallel()

	// A longer dash run contains the token and splits at it; there is no
	// escaping mechanism.
	got := Split("a----b", DefaultSeparator)

	assert.Equal(t, []string{"a", "-b"}, got)
}

func TestSplit_EmptyInput(t *testing.T) {
	t.Parallel()

	got := Split("", DefaultSeparator)

	assert.Equal(t, []string{""}, got)
}

func TestIsVacuous(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "empty", text: "", want: true},
		{name: "whitespace only", text: "  \n\t\n  ", want: true},
		{name: "single comment", text: "// header\n", want: true},
		{name: "comments and blanks", text: "\n// a\n\n// b\n", want: true},
		{name: "indented comment", text: "   // note\n", want: true},
		{name: "code line", text: "\nfoo\n", want: false},
		{name: "comment then code", text: "// setup\nfoo\n", want: false},
		{name: "code resembling comment mid-line", text: "a // trailing\n", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, IsVacuous(tt.text, DefaultCommentPrefix))
		})
	}
}
