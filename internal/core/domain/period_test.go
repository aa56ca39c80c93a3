package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriod_ThisWeekMondayStart(t *testing.T) {
	// Wednesday afternoon resolves to the Monday-Sunday week around it.
	now := time.Date(2025, 3, 12, 15, 45, 0, 0, time.UTC)

	r, err := domain.ResolvePeriod(domain.PeriodThisWeek, now, time.Monday, nil)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 10), r.Start)
	assert.Equal(t, day(2025, 3, 16), r.End)
}

func TestResolvePeriod_ThisWeekOnWeekStartDay(t *testing.T) {
	// Monday itself starts the week, not the previous Monday.
	now := day(2025, 3, 10)

	r, err := domain.ResolvePeriod(domain.PeriodThisWeek, now, time.Monday, nil)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 10), r.Start)
	assert.Equal(t, day(2025, 3, 16), r.End)
}

func TestResolvePeriod_ThisWeekSundayStart(t *testing.T) {
	now := day(2025, 3, 12)

	r, err := domain.ResolvePeriod(domain.PeriodThisWeek, now, time.Sunday, nil)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 9), r.Start)
	assert.Equal(t, day(2025, 3, 15), r.End)
}

func TestResolvePeriod_LastWeekAcrossMonthBoundary(t *testing.T) {
	now := day(2025, 3, 4)

	r, err := domain.ResolvePeriod(domain.PeriodLastWeek, now, time.Monday, nil)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 2, 24), r.Start)
	assert.Equal(t, day(2025, 3, 2), r.End)
}

func TestResolvePeriod_ThisMonthEndsOnLastDay(t *testing.T) {
	for _, tc := range []struct {
		now     time.Time
		lastDay time.Time
	}{
		{day(2025, 2, 14), day(2025, 2, 28)},
		{day(2024, 2, 14), day(2024, 2, 29)}, // leap year
		{day(2025, 4, 1), day(2025, 4, 30)},
		{day(2025, 12, 31), day(2025, 12, 31)},
	} {
		r, err := domain.ResolvePeriod(domain.PeriodThisMonth, tc.now, time.Monday, nil)
		require.NoError(t, err)
		assert.Equal(t, day(tc.now.Year(), tc.now.Month(), 1), r.Start)
		assert.Equal(t, tc.lastDay, r.End)
	}
}

func TestResolvePeriod_LastMonthAcrossYearBoundary(t *testing.T) {
	now := day(2025, 1, 15)

	r, err := domain.ResolvePeriod(domain.PeriodLastMonth, now, time.Monday, nil)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 12, 1), r.Start)
	assert.Equal(t, day(2024, 12, 31), r.End)
}

func TestResolvePeriod_ThisYear(t *testing.T) {
	r, err := domain.ResolvePeriod(domain.PeriodThisYear, day(2025, 7, 4), time.Monday, nil)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 1, 1), r.Start)
	assert.Equal(t, day(2025, 12, 31), r.End)
}

func TestResolvePeriod_AllStartsAtEpoch(t *testing.T) {
	now := day(2025, 6, 1)

	r, err := domain.ResolvePeriod(domain.PeriodAll, now, time.Monday, nil)
	require.NoError(t, err)
	assert.Equal(t, day(1970, 1, 1), r.Start)
	assert.Equal(t, now, r.End)
}

func TestResolvePeriod_CustomRequiresRange(t *testing.T) {
	_, err := domain.ResolvePeriod(domain.PeriodCustom, day(2025, 6, 1), time.Monday, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResolvePeriod_CustomRejectsInvertedRange(t *testing.T) {
	custom := &domain.DateRange{Start: day(2025, 3, 10), End: day(2025, 3, 1)}

	_, err := domain.ResolvePeriod(domain.PeriodCustom, day(2025, 6, 1), time.Monday, custom)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResolvePeriod_CustomTruncatesToCalendarDays(t *testing.T) {
	custom := &domain.DateRange{
		Start: time.Date(2025, 3, 1, 13, 30, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC),
	}

	r, err := domain.ResolvePeriod(domain.PeriodCustom, day(2025, 6, 1), time.Monday, custom)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 1), r.Start)
	assert.Equal(t, day(2025, 3, 10), r.End)
}

func TestResolvePeriod_UnknownFallsBackToThisMonth(t *testing.T) {
	now := day(2025, 3, 12)

	r, err := domain.ResolvePeriod(domain.Period("quarter"), now, time.Monday, nil)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 1), r.Start)
	assert.Equal(t, day(2025, 3, 31), r.End)
}

func TestResolvePeriod_Deterministic(t *testing.T) {
	now := time.Date(2025, 3, 12, 23, 59, 59, 0, time.UTC)

	first, err := domain.ResolvePeriod(domain.PeriodThisWeek, now, time.Monday, nil)
	require.NoError(t, err)
	second, err := domain.ResolvePeriod(domain.PeriodThisWeek, now, time.Monday, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseWeekStart(t *testing.T) {
	assert.Equal(t, time.Sunday, domain.ParseWeekStart("sunday"))
	assert.Equal(t, time.Saturday, domain.ParseWeekStart("Saturday"))
	assert.Equal(t, time.Monday, domain.ParseWeekStart("monday"))
	assert.Equal(t, time.Monday, domain.ParseWeekStart(""))
	assert.Equal(t, time.Monday, domain.ParseWeekStart("someday"))
}
