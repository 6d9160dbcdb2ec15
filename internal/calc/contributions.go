package calc

import (
	"time"

	"github.com/iwvelando/buhcalc/pkg/constants"
	"github.com/iwvelando/buhcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// Regime is the contribution rate applied in a month.
type Regime int

const (
	// RegimeBase applies the base rate to the whole month.
	RegimeBase Regime = iota
	// RegimeBlended splits the month that crosses the threshold.
	RegimeBlended
	// RegimeAbove applies the above-threshold rate to the whole month.
	RegimeAbove
)

func (r Regime) String() string {
	switch r {
	case RegimeBase:
		return "base"
	case RegimeBlended:
		return "blended"
	case RegimeAbove:
		return "above"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (r Regime) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ContributionMonth is one row of the month-by-month schedule.
type ContributionMonth struct {
	Month        time.Month      `json:"month"`
	Salary       decimal.Decimal `json:"salary"`
	Cumulative   decimal.Decimal `json:"cumulative"`
	Regime       Regime          `json:"regime"`
	Contribution decimal.Decimal `json:"contribution"`
	Crosses      bool            `json:"crosses"` // the threshold is exceeded within this month
}

// ContributionsResult is the annual insurance contribution figure for a
// constant monthly salary.
type ContributionsResult struct {
	MonthlySalary     decimal.Decimal `json:"monthlySalary"`
	AnnualSalary      decimal.Decimal `json:"annualSalary"`
	Threshold         decimal.Decimal `json:"threshold"`
	BaseRate          decimal.Decimal `json:"baseRate"`
	AboveRate         decimal.Decimal `json:"aboveRate"`
	MonthlyAtBaseRate decimal.Decimal `json:"monthlyAtBaseRate"`

	WithinThreshold decimal.Decimal `json:"withinThreshold"`
	AboveThreshold  decimal.Decimal `json:"aboveThreshold"`
	Total           decimal.Decimal `json:"total"`

	// Exhausted is false when the threshold is not exceeded within the year.
	Exhausted       bool       `json:"exhausted"`
	ExhaustionMonth time.Month `json:"exhaustionMonth"`

	Schedule      []ContributionMonth `json:"schedule"`
	ScheduleTotal decimal.Decimal     `json:"scheduleTotal"`
}

// Contributions computes employer insurance contributions for a year of
// constant monthly pay and finds the month the annual threshold is crossed.
func (e *Engine) Contributions(monthlySalary int) (ContributionsResult, error) {
	if monthlySalary <= 0 {
		return ContributionsResult{}, outOfRange("monthly salary", monthlySalary, "must be positive",
			"enter a monthly salary greater than 0, for example 100000")
	}

	c := e.tables.Contributions
	monthly := money.FromInt(monthlySalary)
	annual := money.Annualize(monthly)

	r := ContributionsResult{
		MonthlySalary:     monthly,
		AnnualSalary:      annual,
		Threshold:         c.Threshold,
		BaseRate:          c.BaseRate,
		AboveRate:         c.AboveRate,
		MonthlyAtBaseRate: money.Round(monthly.Mul(c.BaseRate)),
	}

	if annual.LessThanOrEqual(c.Threshold) {
		r.WithinThreshold = money.Round(annual.Mul(c.BaseRate))
		r.Total = r.WithinThreshold
	} else {
		r.WithinThreshold = money.Round(c.Threshold.Mul(c.BaseRate))
		r.AboveThreshold = money.Round(annual.Sub(c.Threshold).Mul(c.AboveRate))
		r.Total = r.WithinThreshold.Add(r.AboveThreshold)
		r.ExhaustionMonth, r.Exhausted = exhaustionMonth(c.Threshold, monthly)
	}

	r.Schedule = monthlySchedule(monthly, c.Threshold, c.BaseRate, c.AboveRate)
	r.ScheduleTotal = decimal.Zero
	for _, m := range r.Schedule {
		r.ScheduleTotal = r.ScheduleTotal.Add(m.Contribution)
	}

	return r, nil
}

// exhaustionMonth returns ceil(threshold / monthly) as a calendar month.
// The index is clamped to January at the low end; past December the
// threshold is not exhausted within the year. When the division is exact
// the cap is met in that month and the schedule shows no crossing row.
func exhaustionMonth(threshold, monthly decimal.Decimal) (time.Month, bool) {
	index := threshold.Div(monthly).Ceil().IntPart()
	if index < 1 {
		index = 1
	}
	if index > constants.MonthsPerYear {
		return 0, false
	}
	return time.Month(index), true
}

func monthlySchedule(monthly, threshold, baseRate, aboveRate decimal.Decimal) []ContributionMonth {
	rows := make([]ContributionMonth, 0, constants.MonthsPerYear)
	cumulative := decimal.Zero
	for m := time.January; m <= time.December; m++ {
		previous := cumulative
		cumulative = cumulative.Add(monthly)

		row := ContributionMonth{Month: m, Salary: monthly, Cumulative: cumulative}
		switch {
		case previous.GreaterThanOrEqual(threshold):
			row.Regime = RegimeAbove
			row.Contribution = money.Round(monthly.Mul(aboveRate))
		case cumulative.GreaterThan(threshold):
			within := threshold.Sub(previous)
			above := cumulative.Sub(threshold)
			row.Regime = RegimeBlended
			row.Crosses = true
			row.Contribution = money.Round(within.Mul(baseRate).Add(above.Mul(aboveRate)))
		default:
			row.Regime = RegimeBase
			row.Contribution = money.Round(monthly.Mul(baseRate))
		}
		rows = append(rows, row)
	}
	return rows
}
