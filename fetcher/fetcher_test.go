package fetcher

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubepulse/types"
)

type fakeSource struct {
	name     string
	comments []types.Comment
	err      error
	calls    int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(context.Context, string, int) ([]types.Comment, error) {
	f.calls++
	return f.comments, f.err
}

func someComments(n int) []types.Comment {
	out := make([]types.Comment, n)
	for i := range out {
		out[i] = types.Comment{ID: string(rune('a' + i)), Text: "text"}
	}
	return out
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://example.com/watch?v=dQw4w9WgXcQ", "", true},
		{"not a url at all", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ExtractVideoID(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidVideoURL, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestAdapterPrimarySuccess(t *testing.T) {
	primary := &fakeSource{name: "primary", comments: someComments(3)}
	fallback := &fakeSource{name: "fallback"}

	a := NewAdapter(zerolog.Nop(), primary, fallback)

	got, source, err := a.Fetch(context.Background(), "vid", 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "primary", source)
	assert.Equal(t, 0, fallback.calls, "fallback must not run when primary succeeds")
}

func TestAdapterFallsBackOnPrimaryFailure(t *testing.T) {
	primary := &fakeSource{name: "primary", err: errors.New("quotaExceeded")}
	fallback := &fakeSource{name: "fallback", comments: someComments(2)}

	a := NewAdapter(zerolog.Nop(), primary, fallback)

	got, source, err := a.Fetch(context.Background(), "vid", 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "fallback", source)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestAdapterSourceUnavailableWhenAllFail(t *testing.T) {
	primary := &fakeSource{name: "primary", err: errors.New("auth")}
	fallback := &fakeSource{name: "fallback", err: errors.New("blocked")}

	a := NewAdapter(zerolog.Nop(), primary, fallback)

	_, _, err := a.Fetch(context.Background(), "vid", 10)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestAdapterNoCommentsIsTerminal(t *testing.T) {
	primary := &fakeSource{name: "primary"}
	fallback := &fakeSource{name: "fallback", comments: someComments(5)}

	a := NewAdapter(zerolog.Nop(), primary, fallback)

	_, _, err := a.Fetch(context.Background(), "vid", 10)
	assert.ErrorIs(t, err, ErrNoComments)
	assert.Equal(t, 0, fallback.calls, "an empty result is an answer, not a failure")
}

func TestAdapterRejectsBadMax(t *testing.T) {
	a := NewAdapter(zerolog.Nop(), &fakeSource{name: "primary"})

	_, _, err := a.Fetch(context.Background(), "vid", 0)
	assert.Error(t, err)
}
