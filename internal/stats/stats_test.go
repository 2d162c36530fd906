package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starfeed/reviews/internal/domain"
)

func review(s, q, f, v int, ts time.Time) domain.Review {
	return domain.Review{
		ID:             "r-" + ts.Format("20060102T150405"),
		SupportRating:  s,
		QualityRating:  q,
		FeaturesRating: f,
		ValueRating:    v,
		Timestamp:      ts,
		Status:         domain.StatusApproved,
	}
}

// 2025-03-10 is a Monday.
var monday = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func TestCompute_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Compute(nil))
	assert.Equal(t, Stats{}, Compute([]domain.Review{}))
}

func TestCompute_SingleReview(t *testing.T) {
	got := Compute([]domain.Review{review(4, 5, 3, 4, monday)})

	assert.Equal(t, Stats{
		TotalReviews: 1,
		AvgSupport:   4,
		AvgQuality:   5,
		AvgFeatures:  3,
		AvgValue:     4,
		AvgOverall:   4,
	}, got)
}

func TestCompute_AveragesRoundedToTwoDecimals(t *testing.T) {
	got := Compute([]domain.Review{
		review(1, 2, 5, 3, monday),
		review(2, 2, 5, 3, monday),
		review(2, 2, 5, 4, monday),
	})

	assert.Equal(t, 3, got.TotalReviews)
	assert.InDelta(t, 1.67, got.AvgSupport, 1e-9) // 5/3
	assert.InDelta(t, 2.0, got.AvgQuality, 1e-9)
	assert.InDelta(t, 5.0, got.AvgFeatures, 1e-9)
	assert.InDelta(t, 3.33, got.AvgValue, 1e-9) // 10/3
}

func TestCompute_OverallIsMeanOfPreRoundingMeans(t *testing.T) {
	// Means: 5/3, 2, 5, 10/3 -> overall (5/3 + 2 + 5 + 10/3)/4 = 3.
	got := Compute([]domain.Review{
		review(1, 2, 5, 3, monday),
		review(2, 2, 5, 3, monday),
		review(2, 2, 5, 4, monday),
	})
	assert.InDelta(t, 3.0, got.AvgOverall, 1e-9)
}

func TestCompute_RoundsHalfAwayFromZero(t *testing.T) {
	// 37/8 = 4.625 rounds to 4.63, not banker's 4.62.
	reviews := make([]domain.Review, 8)
	ratings := []int{5, 5, 5, 5, 5, 4, 4, 4}
	for i, r := range ratings {
		reviews[i] = review(r, 3, 3, 3, monday)
	}
	got := Compute(reviews)
	assert.InDelta(t, 4.63, got.AvgSupport, 1e-9)
}

func TestWeekly_GroupsByWeekStart(t *testing.T) {
	now := monday.Add(48 * time.Hour) // Wednesday 2025-03-12

	got := Weekly([]domain.Review{
		review(4, 4, 4, 4, monday),                       // week of 2025-03-10
		review(2, 2, 2, 2, monday.Add(24*time.Hour)),     // same week (Tuesday)
		review(5, 5, 5, 5, monday.Add(-72*time.Hour)),    // Friday, week of 2025-03-03
		review(1, 1, 1, 1, monday.Add(-24*time.Hour)),    // Sunday, week of 2025-03-03
		review(3, 3, 3, 3, monday.Add(-6*24*time.Hour)),  // Tuesday, week of 2025-03-03
	}, now)

	require.Len(t, got, 2)
	assert.Equal(t, 2, got["2025-03-10"].TotalReviews)
	assert.Equal(t, 3, got["2025-03-03"].TotalReviews)
	assert.InDelta(t, 3.0, got["2025-03-10"].AvgSupport, 1e-9)
	assert.InDelta(t, 3.0, got["2025-03-03"].AvgSupport, 1e-9)
}

func TestWeekly_ReviewExactlyAtWeekBoundary(t *testing.T) {
	// Monday 00:00:00 belongs to its own week, not the previous one.
	got := Weekly([]domain.Review{review(4, 4, 4, 4, monday)}, monday)

	require.Len(t, got, 1)
	_, ok := got["2025-03-10"]
	assert.True(t, ok)
}

func TestWeekly_ExcludesReviewsOlderThanFourWeeks(t *testing.T) {
	now := monday

	got := Weekly([]domain.Review{
		review(4, 4, 4, 4, now.Add(-WeeklyWindow)),             // exactly at cutoff: included
		review(5, 5, 5, 5, now.Add(-WeeklyWindow-time.Second)), // just outside: excluded
	}, now)

	require.Len(t, got, 1)
	// Four weeks before a Monday is a Monday.
	assert.Equal(t, 1, got["2025-02-10"].TotalReviews)
}

func TestWeekly_EmptyInput(t *testing.T) {
	got := Weekly(nil, monday)
	assert.Empty(t, got)
}

func TestMonthly_GroupsByCalendarMonth(t *testing.T) {
	now := time.Date(2025, time.April, 15, 12, 0, 0, 0, time.UTC)

	got := Monthly([]domain.Review{
		review(4, 4, 4, 4, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)),
		review(2, 2, 2, 2, time.Date(2025, time.April, 14, 23, 59, 59, 0, time.UTC)),
		review(5, 5, 5, 5, time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)),
		review(3, 3, 3, 3, time.Date(2025, time.February, 2, 8, 0, 0, 0, time.UTC)),
	}, now)

	require.Len(t, got, 3)
	assert.Equal(t, 2, got["2025-04"].TotalReviews)
	assert.Equal(t, 1, got["2025-03"].TotalReviews)
	assert.Equal(t, 1, got["2025-02"].TotalReviews)
	assert.InDelta(t, 3.0, got["2025-04"].AvgSupport, 1e-9)
}

func TestMonthly_ExcludesReviewsOlderThan180Days(t *testing.T) {
	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	got := Monthly([]domain.Review{
		review(4, 4, 4, 4, now.Add(-MonthlyWindow)),             // included
		review(5, 5, 5, 5, now.Add(-MonthlyWindow-time.Minute)), // excluded
	}, now)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got["2025-01"].TotalReviews)
}

func TestMonthly_EmptyBucketsAbsent(t *testing.T) {
	// A month inside the window with no reviews must not appear as a key.
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	got := Monthly([]domain.Review{
		review(4, 4, 4, 4, time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)),
		review(4, 4, 4, 4, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)),
	}, now)

	require.Len(t, got, 2)
	_, ok := got["2025-04"]
	assert.False(t, ok)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday maps to itself", monday, "2025-03-10"},
		{"wednesday maps back", monday.Add(2 * 24 * time.Hour), "2025-03-10"},
		{"sunday maps back six days", monday.Add(6 * 24 * time.Hour), "2025-03-10"},
		{"next monday starts a new week", monday.Add(7 * 24 * time.Hour), "2025-03-17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStart(tt.in).Format("2006-01-02"))
		})
	}
}
