// Package bracket applies progressive (marginal) rate schedules.
//
// Each tier's rate applies only to the slice of the amount that falls inside
// the tier. An amount exactly on a tier's upper bound belongs to that tier.
package bracket

import (
	"errors"
	"fmt"

	"github.com/iwvelando/buhcalc/internal/rates"
	"github.com/iwvelando/buhcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// ErrNegativeAmount is returned when a schedule is applied to a negative amount.
var ErrNegativeAmount = errors.New("amount must not be negative")

// TierSlice is the part of an amount taxed within a single tier.
type TierSlice struct {
	From      decimal.Decimal `json:"from"`
	To        decimal.Decimal `json:"to"`        // top of the taxed slice, not the tier bound
	Unbounded bool            `json:"unbounded"` // the slice lies in the open-ended tier
	Rate      decimal.Decimal `json:"rate"`
	Taxable   decimal.Decimal `json:"taxable"`
	Tax       decimal.Decimal `json:"tax"` // rounded per tier for display
}

// Evaluate returns the total marginal tax on amount, rounded to kopecks.
// The tier taxes are summed at full precision and rounded once.
func Evaluate(amount decimal.Decimal, schedule rates.Schedule) (decimal.Decimal, error) {
	total := decimal.Zero
	err := walk(amount, schedule, func(s TierSlice) {
		total = total.Add(s.Taxable.Mul(s.Rate))
	})
	if err != nil {
		return decimal.Zero, err
	}
	return money.Round(total), nil
}

// Breakdown returns the per-tier slices of amount. A zero amount yields a
// single empty slice at the first tier's rate.
func Breakdown(amount decimal.Decimal, schedule rates.Schedule) ([]TierSlice, error) {
	var slices []TierSlice
	err := walk(amount, schedule, func(s TierSlice) {
		s.Tax = money.Round(s.Taxable.Mul(s.Rate))
		slices = append(slices, s)
	})
	if err != nil {
		return nil, err
	}
	return slices, nil
}

// walk visits the tiers touched by amount in ascending order and stops at
// the tier that contains it.
func walk(amount decimal.Decimal, schedule rates.Schedule, visit func(TierSlice)) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	if len(schedule) == 0 {
		return fmt.Errorf("%w: empty schedule", rates.ErrInvalidRateTable)
	}

	lower := decimal.Zero
	for _, tier := range schedule {
		if tier.Unbounded() || amount.LessThanOrEqual(*tier.UpTo) {
			visit(TierSlice{
				From:      lower,
				To:        amount,
				Unbounded: tier.Unbounded(),
				Rate:      tier.Rate,
				Taxable:   amount.Sub(lower),
			})
			return nil
		}
		visit(TierSlice{
			From:    lower,
			To:      *tier.UpTo,
			Rate:    tier.Rate,
			Taxable: tier.UpTo.Sub(lower),
		})
		lower = *tier.UpTo
	}

	// Validated schedules always end with an unbounded tier.
	return fmt.Errorf("%w: amount %s exceeds the last bounded tier", rates.ErrInvalidRateTable, amount)
}
