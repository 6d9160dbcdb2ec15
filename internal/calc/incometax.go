package calc

import (
	"github.com/iwvelando/buhcalc/internal/bracket"
	"github.com/iwvelando/buhcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// IncomeTaxResult is the annual progressive income tax on one income.
type IncomeTaxResult struct {
	AnnualIncome  decimal.Decimal     `json:"annualIncome"`
	Tax           decimal.Decimal     `json:"tax"`
	Tiers         []bracket.TierSlice `json:"tiers"`
	EffectiveRate decimal.Decimal     `json:"effectiveRate"` // percent
	NetAnnual     decimal.Decimal     `json:"netAnnual"`
	NetMonthly    decimal.Decimal     `json:"netMonthly"`
}

// IncomeTax applies the standard progressive schedule to an annual income.
func (e *Engine) IncomeTax(annualIncome int) (IncomeTaxResult, error) {
	if annualIncome < 0 {
		return IncomeTaxResult{}, outOfRange("income", annualIncome, "must not be negative",
			"enter an annual income of 0 or more, for example 3000000")
	}

	income := money.FromInt(annualIncome)
	tax, err := bracket.Evaluate(income, e.tables.IncomeTax)
	if err != nil {
		return IncomeTaxResult{}, err
	}
	tiers, err := bracket.Breakdown(income, e.tables.IncomeTax)
	if err != nil {
		return IncomeTaxResult{}, err
	}

	net := income.Sub(tax)
	return IncomeTaxResult{
		AnnualIncome:  income,
		Tax:           tax,
		Tiers:         tiers,
		EffectiveRate: money.CalculatePercentage(tax, income),
		NetAnnual:     net,
		NetMonthly:    money.MonthlyShare(net),
	}, nil
}
