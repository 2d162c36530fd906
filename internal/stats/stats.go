package stats

import (
	"math"
	"time"

	"github.com/starfeed/reviews/internal/domain"
)

// Time windows for the bucketed aggregations.
const (
	WeeklyWindow  = 4 * 7 * 24 * time.Hour
	MonthlyWindow = 180 * 24 * time.Hour
)

// Stats is the five-number summary produced by the aggregation engine:
// review count, the four per-dimension averages, and the overall average.
// All averages are rounded to two decimal places.
type Stats struct {
	TotalReviews int     `json:"total_reviews"`
	AvgSupport   float64 `json:"avg_support"`
	AvgQuality   float64 `json:"avg_quality"`
	AvgFeatures  float64 `json:"avg_features"`
	AvgValue     float64 `json:"avg_value"`
	AvgOverall   float64 `json:"avg_overall"`
}

// Compute calculates aggregate statistics over the supplied reviews.
// An empty input yields an explicit zero-valued Stats record, not an error.
//
// AvgOverall is the mean of the four pre-rounding dimension means, matching
// the published contract: the overall figure is an average of averages, not
// a mean over all individual rating values.
func Compute(reviews []domain.Review) Stats {
	if len(reviews) == 0 {
		return Stats{}
	}

	total := len(reviews)
	var sumSupport, sumQuality, sumFeatures, sumValue int
	for _, r := range reviews {
		sumSupport += r.SupportRating
		sumQuality += r.QualityRating
		sumFeatures += r.FeaturesRating
		sumValue += r.ValueRating
	}

	n := float64(total)
	avgSupport := float64(sumSupport) / n
	avgQuality := float64(sumQuality) / n
	avgFeatures := float64(sumFeatures) / n
	avgValue := float64(sumValue) / n
	avgOverall := (avgSupport + avgQuality + avgFeatures + avgValue) / 4

	return Stats{
		TotalReviews: total,
		AvgSupport:   round2(avgSupport),
		AvgQuality:   round2(avgQuality),
		AvgFeatures:  round2(avgFeatures),
		AvgValue:     round2(avgValue),
		AvgOverall:   round2(avgOverall),
	}
}

// Weekly groups the reviews from the last four weeks by the Monday of their
// ISO week and computes Stats per group. The bucket key is the week start
// formatted as YYYY-MM-DD. Weeks with no reviews produce no key.
func Weekly(reviews []domain.Review, now time.Time) map[string]Stats {
	cutoff := now.Add(-WeeklyWindow)
	return bucketed(reviews, cutoff, func(ts time.Time) string {
		return WeekStart(ts).Format("2006-01-02")
	})
}

// Monthly groups the reviews from the last 180 days by calendar month and
// computes Stats per group. The bucket key is formatted as YYYY-MM.
// Months with no reviews produce no key.
func Monthly(reviews []domain.Review, now time.Time) map[string]Stats {
	cutoff := now.Add(-MonthlyWindow)
	return bucketed(reviews, cutoff, func(ts time.Time) string {
		return ts.UTC().Format("2006-01")
	})
}

// bucketed implements the shared select-group-compute pipeline: keep reviews
// at or after the cutoff, group them by key, then run Compute per group.
func bucketed(reviews []domain.Review, cutoff time.Time, key func(time.Time) string) map[string]Stats {
	groups := make(map[string][]domain.Review)
	for _, r := range reviews {
		if r.Timestamp.Before(cutoff) {
			continue
		}
		k := key(r.Timestamp)
		groups[k] = append(groups[k], r)
	}

	result := make(map[string]Stats, len(groups))
	for k, group := range groups {
		result[k] = Compute(group)
	}
	return result
}

// WeekStart returns the Monday of the ISO week containing t, preserving the
// time of day. Callers format only the date portion.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset)
}

// round2 rounds to two decimal places, half away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
