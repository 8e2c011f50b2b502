// Package export renders a classified run as CSV for download. The standard
// library encoder is used here; there is no CSV dependency anywhere in the
// stack to reuse.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"tubepulse/types"
)

// Header is the fixed CSV column contract.
var Header = []string{"id", "author", "text", "clean_text", "label", "score", "like_count", "published_at"}

// WriteCSV writes one row per comment, including those labeled unknown.
func WriteCSV(w io.Writer, comments []types.ClassifiedComment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, c := range comments {
		published := ""
		if !c.PublishedAt.IsZero() {
			published = c.PublishedAt.Format(time.RFC3339)
		}

		row := []string{
			c.ID,
			c.Author,
			c.Text,
			c.CleanText,
			string(c.Label),
			strconv.FormatFloat(c.Score, 'f', 4, 64),
			strconv.Itoa(c.LikeCount),
			published,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for comment %s: %w", c.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
