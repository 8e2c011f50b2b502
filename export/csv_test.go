package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubepulse/types"
)

func TestWriteCSV(t *testing.T) {
	published := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	comments := []types.ClassifiedComment{
		{
			NormalizedComment: types.NormalizedComment{
				Comment: types.Comment{
					ID: "c1", Author: "alice", Text: "Great, \"really\" great!",
					PublishedAt: published, LikeCount: 12,
				},
				CleanText: "great really great",
			},
			Label: types.LabelPositive,
			Score: 0.91,
		},
		{
			NormalizedComment: types.NormalizedComment{
				Comment: types.Comment{ID: "c2", Author: "bob", Text: "???"},
			},
			Label: types.LabelUnknown,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, comments))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"c1", "alice", "Great, \"really\" great!", "great really great", "positive", "0.9100", "12", "2024-03-15T10:30:00Z"}, rows[1])

	// Unknown-labeled comments stay in the export.
	assert.Equal(t, "unknown", rows[2][4])
	assert.Equal(t, "", rows[2][7])
	assert.Equal(t, "0", rows[2][6])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Header, rows[0])
}
