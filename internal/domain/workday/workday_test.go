package workday_test

import (
	"testing"

	"github.com/rpggio/quotestudio/internal/domain/workday"
	"github.com/stretchr/testify/require"
)

func TestCompute_SingleDay(t *testing.T) {
	monday := workday.Compute("2025-01-06", "2025-01-06")
	require.Equal(t, 1, monday.BusinessDays)
	require.GreaterOrEqual(t, monday.Weeks, 0.1)

	saturday := workday.Compute("2025-01-11", "2025-01-11")
	require.Equal(t, 0, saturday.BusinessDays)
}

func TestCompute_WorkWeek(t *testing.T) {
	span := workday.Compute("2025-01-06", "2025-01-10")
	require.Equal(t, 5, span.BusinessDays)
	require.Equal(t, 0.7, span.Weeks)
}

func TestCompute_SpansWeekend(t *testing.T) {
	// Friday through the following Monday.
	span := workday.Compute("2025-01-10", "2025-01-13")
	require.Equal(t, 2, span.BusinessDays)

	span = workday.Compute("2025-01-01", "2025-01-31")
	require.Equal(t, 23, span.BusinessDays)
	require.Equal(t, 4.4, span.Weeks)
}

func TestCompute_ReversedRange(t *testing.T) {
	span := workday.Compute("2025-01-10", "2025-01-06")
	require.Equal(t, workday.Span{}, span)
}

func TestCompute_MalformedDates(t *testing.T) {
	require.Equal(t, workday.Span{}, workday.Compute("", "2025-01-06"))
	require.Equal(t, workday.Span{}, workday.Compute("2025-01-06", "not-a-date"))
	require.Equal(t, workday.Span{}, workday.Compute("2025-02-30", "2025-03-01"))
}

func TestParseDate_IgnoresTimeComponent(t *testing.T) {
	d, ok := workday.ParseDate("2025-01-06T10:30:00.000Z")
	require.True(t, ok)
	require.Equal(t, "2025-01-06", workday.FormatDate(d))
}
