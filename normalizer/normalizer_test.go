package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only noise", "!!! 😀😀 ???", ""},
		{"url stripped", "watch this https://example.com/v?x=1 please", "watch please"},
		{"www url stripped", "go to www.example.com homie", "go homie"},
		{"html stripped", "great <br><b>video</b>", "great video"},
		{"lowercased", "AMAZING Content", "amazing content"},
		{"stopwords removed", "this is the best video of all time", "best video time"},
		{"plural lemmatized", "two cats and three dogs", "two cat three dog"},
		{"whitespace collapsed", "  so   much\tspace\n", "much space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeSpecExample(t *testing.T) {
	got := Normalize("Check http://x.com NOW!! 😀")

	assert.Equal(t, "check", got)
	assert.NotContains(t, got, "http")
	assert.Equal(t, strings.ToLower(got), got)
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Check http://x.com NOW!! 😀",
		"The movies were <b>great</b>, really great!",
		"others said the glasses broke",
		"plain text already クール",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be a fixed point for %q", in)
	}
}

func TestLemmatize(t *testing.T) {
	tests := map[string]string{
		"cats":     "cat",
		"parties":  "party",
		"glasses":  "glass",
		"boxes":    "box",
		"churches": "church",
		"pass":     "pass",
		"bus":      "bus",
		"analysis": "analysis",
		"dog":      "dog",
	}

	for in, want := range tests {
		assert.Equal(t, want, Lemmatize(in), "lemmatize(%q)", in)
	}
}
