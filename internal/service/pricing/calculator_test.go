package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(hours int) (time.Time, time.Time) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return start, start.Add(time.Duration(hours) * time.Hour)
}

func TestBilledDays(t *testing.T) {
	tests := []struct {
		name  string
		hours int
		want  int64
	}{
		{"two hours bills one day", 2, 1},
		{"exactly one day", 24, 1},
		{"one day and an hour rounds up", 25, 2},
		{"exactly two days", 48, 2},
		{"two days and a minute rounds up", 49, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := interval(tt.hours)
			assert.Equal(t, tt.want, BilledDays(start, end))
		})
	}
}

func TestPriceRoundsPartialDaysUp(t *testing.T) {
	calc := NewCalculator(500, 1500)

	start, end := interval(25)
	q := calc.Price(1500, start, end, false)

	assert.Equal(t, int64(2), q.BilledDays)
	assert.Equal(t, 3000.0, q.BaseCost)
	assert.Equal(t, 0.0, q.DriverFee)
	assert.Equal(t, 3000.0, q.Total)
}

func TestPriceDriverFeeScalesWithBilledDays(t *testing.T) {
	calc := NewCalculator(500, 1500)

	start, end := interval(24)
	q := calc.Price(2000, start, end, true)

	assert.Equal(t, int64(1), q.BilledDays)
	assert.Equal(t, 2000.0, q.BaseCost)
	assert.Equal(t, 500.0, q.DriverFee)
	assert.Equal(t, 2500.0, q.Total)
}

func TestPriceMinimumOneDay(t *testing.T) {
	calc := NewCalculator(500, 1500)

	start, end := interval(2)
	q := calc.Price(1800, start, end, true)

	assert.Equal(t, int64(1), q.BilledDays)
	assert.Equal(t, 1800.0, q.BaseCost)
	assert.Equal(t, 500.0, q.DriverFee)
	assert.Equal(t, 2300.0, q.Total)
}

func TestPriceFallsBackToBaseRate(t *testing.T) {
	calc := NewCalculator(500, 1500)

	start, end := interval(24)
	q := calc.Price(0, start, end, false)

	assert.Equal(t, 1500.0, q.BaseCost)
}
