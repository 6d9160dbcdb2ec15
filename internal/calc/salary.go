package calc

import (
	"fmt"
	"strings"

	"github.com/iwvelando/buhcalc/internal/bracket"
	"github.com/iwvelando/buhcalc/internal/rates"
	"github.com/iwvelando/buhcalc/pkg/constants"
	"github.com/iwvelando/buhcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// SalaryResult is the monthly payroll breakdown for one employee.
type SalaryResult struct {
	Territory        rates.Territory `json:"territory"`
	TerritoryName    string          `json:"territoryName"`
	Coefficient      decimal.Decimal `json:"coefficient"`
	RequestedPercent int             `json:"requestedPercent"`
	AllowancePercent int             `json:"allowancePercent"` // after clamping to the territory ceiling
	AllowanceClamped bool            `json:"allowanceClamped"`

	Base                decimal.Decimal `json:"base"`
	CoefficientAddition decimal.Decimal `json:"coefficientAddition"`
	AllowanceAddition   decimal.Decimal `json:"allowanceAddition"`
	Gross               decimal.Decimal `json:"gross"`

	// Annual tax bases and taxes of the two income streams.
	AnnualBase        decimal.Decimal `json:"annualBase"`
	AnnualNorthern    decimal.Decimal `json:"annualNorthern"`
	AnnualIncomeTax   decimal.Decimal `json:"annualIncomeTax"`
	AnnualNorthernTax decimal.Decimal `json:"annualNorthernTax"`
	IncomeTaxBase     decimal.Decimal `json:"incomeTaxBase"`     // monthly, for display
	IncomeTaxNorthern decimal.Decimal `json:"incomeTaxNorthern"` // monthly, for display
	IncomeTaxWithheld decimal.Decimal `json:"incomeTaxWithheld"` // monthly withholding
	Net               decimal.Decimal `json:"net"`

	ContributionRate      decimal.Decimal `json:"contributionRate"`
	EmployerContributions decimal.Decimal `json:"employerContributions"`
	EmployerCost          decimal.Decimal `json:"employerCost"`

	MinimumWage          decimal.Decimal `json:"minimumWage"`
	BelowMinimumWage     bool            `json:"belowMinimumWage"`
	ExtraVacationDays    int             `json:"extraVacationDays"`
	ReducedWorkWeekHours int             `json:"reducedWorkWeekHours"`
}

// Salary computes gross and net monthly pay for a base salary in the given
// territory. A requested allowance above the territory ceiling is silently
// capped at the ceiling.
func (e *Engine) Salary(territoryKey string, base int, allowancePct int) (SalaryResult, error) {
	territory, err := rates.ParseTerritory(territoryKey)
	if err != nil {
		return SalaryResult{}, unknownKey("territory", territoryKey, err, e.territoryHint())
	}
	profile, ok := e.tables.Territory(territory)
	if !ok {
		return SalaryResult{}, unknownKey("territory", territoryKey, rates.ErrUnknownTerritory, e.territoryHint())
	}
	if base <= 0 {
		return SalaryResult{}, outOfRange("base", base, "must be positive", "enter a salary greater than 0, for example 50000")
	}
	if allowancePct < 0 || allowancePct > constants.MaxAllowancePercent {
		ceiling := money.ToPercent(profile.MaxAllowance).IntPart()
		return SalaryResult{}, outOfRange("allowance", allowancePct, "must be between 0 and 100",
			fmt.Sprintf("enter a number between 0 and %d", ceiling))
	}

	allowance := money.Min(money.Percent(allowancePct), profile.MaxAllowance)
	baseD := money.FromInt(base)

	r := SalaryResult{
		Territory:            territory,
		TerritoryName:        profile.Name,
		Coefficient:          profile.Coefficient,
		RequestedPercent:     allowancePct,
		AllowancePercent:     int(money.ToPercent(allowance).IntPart()),
		AllowanceClamped:     allowance.LessThan(money.Percent(allowancePct)),
		Base:                 baseD,
		CoefficientAddition:  money.Round(baseD.Mul(profile.Coefficient.Sub(decimal.NewFromInt(1)))),
		AllowanceAddition:    money.Round(baseD.Mul(allowance)),
		MinimumWage:          e.tables.MinimumWage,
		BelowMinimumWage:     baseD.LessThan(e.tables.MinimumWage),
		ExtraVacationDays:    profile.ExtraVacationDays,
		ReducedWorkWeekHours: profile.ReducedWorkWeekHours,
	}
	r.Gross = r.Base.Add(r.CoefficientAddition).Add(r.AllowanceAddition)

	// The regional part of pay is taxed under its own schedule. Annual bases
	// are whole rubles.
	r.AnnualBase = money.WholeRubles(money.Annualize(r.Base))
	r.AnnualNorthern = money.WholeRubles(money.Annualize(r.CoefficientAddition.Add(r.AllowanceAddition)))

	if r.AnnualIncomeTax, err = bracket.Evaluate(r.AnnualBase, e.tables.IncomeTax); err != nil {
		return SalaryResult{}, err
	}
	if r.AnnualNorthernTax, err = bracket.Evaluate(r.AnnualNorthern, e.tables.NorthernIncomeTax); err != nil {
		return SalaryResult{}, err
	}

	r.IncomeTaxBase = money.MonthlyShare(r.AnnualIncomeTax)
	r.IncomeTaxNorthern = money.MonthlyShare(r.AnnualNorthernTax)
	r.IncomeTaxWithheld = money.MonthlyShare(r.AnnualIncomeTax.Add(r.AnnualNorthernTax))
	r.Net = money.Round(r.Gross.Sub(r.IncomeTaxWithheld))

	r.ContributionRate = e.tables.Contributions.BaseRate
	r.EmployerContributions = money.Round(r.Gross.Mul(r.ContributionRate))
	r.EmployerCost = r.Gross.Add(r.EmployerContributions)

	return r, nil
}

func (e *Engine) territoryHint() string {
	territories := e.tables.TerritoryKeys()
	keys := make([]string, 0, len(territories))
	for _, t := range territories {
		keys = append(keys, t.Key())
	}
	return "choose a territory group: " + strings.Join(keys, ", ")
}
