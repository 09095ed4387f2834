// internal/service/pricing/calculator.go
package pricing

import (
	"math"
	"time"
)

// Quote is a cost breakdown for one reservation interval.
type Quote struct {
	BilledDays int64   `json:"billed_days"`
	BaseCost   float64 `json:"base_cost"`
	DriverFee  float64 `json:"driver_fee"`
	Total      float64 `json:"total_cost"`
}

// Calculator prices reservation intervals. Any started day bills as a full
// day and every reservation bills at least one day, so a 2-hour rental and a
// 24-hour rental cost the same.
type Calculator struct {
	driverFeePerDay float64
	baseDailyRate   float64
}

func NewCalculator(driverFeePerDay, baseDailyRate float64) *Calculator {
	return &Calculator{
		driverFeePerDay: driverFeePerDay,
		baseDailyRate:   baseDailyRate,
	}
}

// BilledDays converts an interval into whole billed days, rounding any
// partial day up and never billing fewer than one day.
func BilledDays(start, end time.Time) int64 {
	days := int64(math.Ceil(end.Sub(start).Seconds() / 86400.0))
	if days < 1 {
		days = 1
	}
	return days
}

// Price computes the quote for an interval at a vehicle's daily rate. A
// non-positive rate falls back to the configured base rate so a catalogue row
// without pricing still produces a charge.
func (c *Calculator) Price(dailyRate float64, start, end time.Time, withDriver bool) Quote {
	if dailyRate <= 0 {
		dailyRate = c.baseDailyRate
	}

	days := BilledDays(start, end)
	q := Quote{
		BilledDays: days,
		BaseCost:   dailyRate * float64(days),
	}
	if withDriver {
		q.DriverFee = c.driverFeePerDay * float64(days)
	}
	q.Total = q.BaseCost + q.DriverFee
	return q
}
