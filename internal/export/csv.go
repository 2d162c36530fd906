package export

import (
	"strconv"
	"strings"

	"github.com/starfeed/reviews/internal/domain"
)

// header is the first line of every export.
const header = "Date,Support,Quality,Features,Value,Comment"

// CSV renders the given reviews as delimited text: a header line followed by
// one line per review. The caller supplies only approved reviews, already
// ordered descending by timestamp.
//
// The date and comment fields are always quoted; the four rating fields are
// bare integers. Inside the comment, double quotes are doubled and newlines
// are replaced with a single space.
func CSV(reviews []domain.Review) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')

	for _, r := range reviews {
		b.WriteByte('"')
		b.WriteString(r.Timestamp.UTC().Format("2006-01-02 15:04"))
		b.WriteString(`",`)
		b.WriteString(strconv.Itoa(r.SupportRating))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(r.QualityRating))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(r.FeaturesRating))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(r.ValueRating))
		b.WriteString(`,"`)
		b.WriteString(escapeComment(r.Comment))
		b.WriteString("\"\n")
	}

	return b.String()
}

// escapeComment doubles embedded quotes and collapses any newline style
// (\r\n, \n, \r) to a single space.
func escapeComment(s string) string {
	s = strings.ReplaceAll(s, `"`, `""`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
