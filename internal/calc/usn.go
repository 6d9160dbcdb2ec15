package calc

import (
	"github.com/iwvelando/buhcalc/internal/rates"
	"github.com/iwvelando/buhcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// SimplifiedTaxCard lists the regional simplified tax system rates in
// percent. It is informational; no tax is computed from it.
type SimplifiedTaxCard struct {
	Region                 string          `json:"region"`
	Year                   int             `json:"year"`
	Law                    string          `json:"law"`
	IncomeStandard         decimal.Decimal `json:"incomeStandard"`
	IncomeReduced          decimal.Decimal `json:"incomeReduced"`
	IncomeExpenseStandard  decimal.Decimal `json:"incomeExpenseStandard"`
	IncomeExpenseReduced   decimal.Decimal `json:"incomeExpenseReduced"`
	MinPreferentialShare   decimal.Decimal `json:"minPreferentialShare"`
	PreferentialActivities []string        `json:"preferentialActivities"`
}

// SimplifiedTax returns the simplified tax card of the loaded region.
func (e *Engine) SimplifiedTax() SimplifiedTaxCard {
	s := e.tables.Simplified
	return SimplifiedTaxCard{
		Region:                 e.tables.Region,
		Year:                   e.tables.Year,
		Law:                    s.Law,
		IncomeStandard:         money.ToPercent(s.IncomeStandard),
		IncomeReduced:          money.ToPercent(s.IncomeReduced),
		IncomeExpenseStandard:  money.ToPercent(s.IncomeExpenseStandard),
		IncomeExpenseReduced:   money.ToPercent(s.IncomeExpenseReduced),
		MinPreferentialShare:   money.ToPercent(s.MinPreferentialShare),
		PreferentialActivities: append([]string(nil), s.PreferentialActivities...),
	}
}

// Territories returns the territory profiles in key order.
func (e *Engine) Territories() []TerritoryInfo {
	keys := e.tables.TerritoryKeys()
	out := make([]TerritoryInfo, 0, len(keys))
	for _, key := range keys {
		p, _ := e.tables.Territory(key)
		out = append(out, TerritoryInfo{
			Territory:            key,
			Name:                 p.Name,
			Coefficient:          p.Coefficient,
			MaxAllowancePercent:  int(money.ToPercent(p.MaxAllowance).IntPart()),
			ExtraVacationDays:    p.ExtraVacationDays,
			ReducedWorkWeekHours: p.ReducedWorkWeekHours,
		})
	}
	return out
}

// TerritoryInfo is a display row of the territory reference table.
type TerritoryInfo struct {
	Territory            rates.Territory `json:"territory"`
	Name                 string          `json:"name"`
	Coefficient          decimal.Decimal `json:"coefficient"`
	MaxAllowancePercent  int             `json:"maxAllowancePercent"`
	ExtraVacationDays    int             `json:"extraVacationDays"`
	ReducedWorkWeekHours int             `json:"reducedWorkWeekHours"`
}
