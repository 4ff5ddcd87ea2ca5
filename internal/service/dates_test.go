package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	require.Equal(t, 31, daysInMonth(2024, time.January))
	require.Equal(t, 29, daysInMonth(2024, time.February))
	require.Equal(t, 28, daysInMonth(2023, time.February))
	require.Equal(t, 30, daysInMonth(2024, time.April))
	require.Equal(t, 31, daysInMonth(2024, time.December))
}

func TestAddClippedMonth(t *testing.T) {
	tests := []struct {
		in, want time.Time
	}{
		{date(2024, time.January, 15), date(2024, time.February, 15)},
		{date(2024, time.January, 31), date(2024, time.February, 29)},
		{date(2023, time.January, 31), date(2023, time.February, 28)},
		{date(2024, time.March, 31), date(2024, time.April, 30)},
		{date(2024, time.December, 15), date(2025, time.January, 15)},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, addClippedMonth(tt.in))
	}
}

func TestMonthAnchor(t *testing.T) {
	require.Equal(t, date(2024, time.April, 30), monthAnchor(31, date(2024, time.April, 5)))
	require.Equal(t, date(2024, time.April, 15), monthAnchor(15, date(2024, time.April, 5)))
}

func TestMonthBounds(t *testing.T) {
	from, to := monthBounds(date(2024, time.February, 14))
	require.Equal(t, date(2024, time.February, 1), from)
	require.Equal(t, date(2024, time.March, 1), to)
}
