package calc

import (
	"fmt"
	"strings"

	"github.com/iwvelando/buhcalc/internal/rates"
	"github.com/iwvelando/buhcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// VATResult holds both directions of a VAT calculation. The reverse figures
// are derived from Total, which already includes the rounded VAT.
type VATResult struct {
	Rate   rates.VATRate   `json:"rate"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	VAT    decimal.Decimal `json:"vat"`
	Total  decimal.Decimal `json:"total"`

	ReverseRate  decimal.Decimal `json:"reverseRate"` // rate / (1 + rate)
	VATFromTotal decimal.Decimal `json:"vatFromTotal"`
	NetFromTotal decimal.Decimal `json:"netFromTotal"`
}

// VAT adds VAT to a net amount and extracts it back from the gross total.
func (e *Engine) VAT(amount int, ratePct int) (VATResult, error) {
	if amount < 0 {
		return VATResult{}, outOfRange("amount", amount, "must not be negative",
			"enter an amount of 0 or more, for example 100000")
	}
	rate, err := rates.ParseVATRate(ratePct)
	if err != nil {
		return VATResult{}, e.vatRateError(ratePct, err)
	}
	profile, ok := e.tables.VATProfile(rate)
	if !ok {
		return VATResult{}, e.vatRateError(ratePct, rates.ErrUnknownVATRate)
	}

	fraction := rate.Fraction()
	amountD := money.FromInt(amount)
	r := VATResult{
		Rate:   rate,
		Label:  profile.Label,
		Amount: amountD,
		VAT:    money.Round(amountD.Mul(fraction)),
	}
	r.Total = r.Amount.Add(r.VAT)

	r.ReverseRate = fraction.Div(decimal.NewFromInt(1).Add(fraction))
	r.VATFromTotal = money.Round(r.Total.Mul(r.ReverseRate))
	r.NetFromTotal = r.Total.Sub(r.VATFromTotal)

	return r, nil
}

func (e *Engine) vatRateError(ratePct int, cause error) *InputError {
	allowed := make([]string, 0, len(e.tables.VAT))
	for _, p := range e.tables.VAT {
		allowed = append(allowed, fmt.Sprintf("%d", p.Rate.Percent()))
	}
	err := outOfRange("rate", ratePct, "not an enabled VAT rate",
		"choose a VAT rate: "+strings.Join(allowed, ", "))
	err.cause = cause
	return err
}
