package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/buhcalc/internal/calc"
	"github.com/iwvelando/buhcalc/pkg/constants"
	"github.com/iwvelando/buhcalc/pkg/format"
	"github.com/iwvelando/buhcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// CsvFormat writes a calculation result as CSV with a header row. Amounts
// use a decimal point and two fractional digits; rates are in percent.
func CsvFormat(w io.Writer, result any) error {
	var records [][]string
	switch r := result.(type) {
	case calc.SalaryResult:
		records = salaryRecords(r)
	case calc.IncomeTaxResult:
		records = incomeTaxRecords(r)
	case calc.ContributionsResult:
		records = scheduleRecords(r)
	case calc.VATResult:
		records = vatRecords(r)
	case calc.TransportTaxResult:
		records = transportRecords(r)
	case calc.SimplifiedTaxCard:
		records = simplifiedRecords(r)
	case []calc.TerritoryInfo:
		records = territoryRecords(r)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedResult, result)
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func amount(v decimal.Decimal) string {
	return v.StringFixed(constants.DecimalPlaces)
}

func percent(rate decimal.Decimal) string {
	return money.ToPercent(rate).String()
}

func salaryRecords(r calc.SalaryResult) [][]string {
	return [][]string{
		{"Показатель", "Сумма, ₽"},
		{"Территория", r.TerritoryName},
		{"Районный коэффициент", r.Coefficient.String()},
		{"Северная надбавка, %", strconv.Itoa(r.AllowancePercent)},
		{"Оклад", amount(r.Base)},
		{"РК (" + r.Coefficient.Sub(decimal.NewFromInt(1)).String() + ")", amount(r.CoefficientAddition)},
		{"Надбавка (" + strconv.Itoa(r.AllowancePercent) + "%)", amount(r.AllowanceAddition)},
		{"Начислено (gross)", amount(r.Gross)},
		{"НДФЛ (основная часть, мес.)", amount(r.IncomeTaxBase)},
		{"НДФЛ (северная часть, мес.)", amount(r.IncomeTaxNorthern)},
		{"НДФЛ итого, мес.", amount(r.IncomeTaxWithheld)},
		{"На руки (net)", amount(r.Net)},
		{"Страховые взносы (" + percent(r.ContributionRate) + "%), мес.", amount(r.EmployerContributions)},
		{"Полная стоимость сотрудника", amount(r.EmployerCost)},
	}
}

func incomeTaxRecords(r calc.IncomeTaxResult) [][]string {
	records := [][]string{{"От, ₽", "До, ₽", "Ставка, %", "Облагаемая база, ₽", "НДФЛ, ₽"}}
	for _, tier := range r.Tiers {
		records = append(records, []string{
			amount(tier.From), amount(tier.To), percent(tier.Rate), amount(tier.Taxable), amount(tier.Tax),
		})
	}
	return append(records, []string{"ИТОГО", "", "", amount(r.AnnualIncome), amount(r.Tax)})
}

func scheduleRecords(r calc.ContributionsResult) [][]string {
	records := [][]string{{"Месяц", "Зарплата, ₽", "Нарастающий итог, ₽", "Ставка, %", "Взносы, ₽", "ЕПБ исчерп."}}
	for _, row := range r.Schedule {
		rate := "переход"
		switch row.Regime {
		case calc.RegimeBase:
			rate = percent(r.BaseRate)
		case calc.RegimeAbove:
			rate = percent(r.AboveRate)
		}
		records = append(records, []string{
			format.MonthTitle(row.Month), amount(row.Salary), amount(row.Cumulative),
			rate, amount(row.Contribution), crossMark(row.Crosses),
		})
	}
	return append(records, []string{"ИТОГО", amount(r.AnnualSalary), "", "", amount(r.ScheduleTotal), ""})
}

func vatRecords(r calc.VATResult) [][]string {
	return [][]string{
		{"Показатель", "Сумма, ₽"},
		{"Ставка НДС, %", strconv.Itoa(r.Rate.Percent())},
		{"Сумма без НДС", amount(r.Amount)},
		{"НДС", amount(r.VAT)},
		{"Итого с НДС", amount(r.Total)},
		{"В т.ч. НДС (обратный расчёт)", amount(r.VATFromTotal)},
		{"Без НДС (обратный расчёт)", amount(r.NetFromTotal)},
	}
}

func transportRecords(r calc.TransportTaxResult) [][]string {
	return [][]string{
		{"Показатель", "Значение"},
		{"Тип ТС", r.Title},
		{"Мощность, л.с.", strconv.Itoa(r.Horsepower)},
		{"Ставка, ₽/л.с.", amount(r.Rate)},
		{"Налог за год, ₽", amount(r.Tax)},
	}
}

func simplifiedRecords(r calc.SimplifiedTaxCard) [][]string {
	return [][]string{
		{"Объект налогообложения", "Стандартная, %", "Льготная, %"},
		{"Доходы", r.IncomeStandard.String(), r.IncomeReduced.String()},
		{"Доходы минус расходы", r.IncomeExpenseStandard.String(), r.IncomeExpenseReduced.String()},
	}
}

func territoryRecords(list []calc.TerritoryInfo) [][]string {
	records := [][]string{{"Группа", "Территория", "РК", "Надбавка до, %", "Доп. отпуск, дн.", "Раб. неделя (жен.), ч"}}
	for _, t := range list {
		records = append(records, []string{
			t.Territory.Key(), t.Name, t.Coefficient.String(), strconv.Itoa(t.MaxAllowancePercent),
			strconv.Itoa(t.ExtraVacationDays), strconv.Itoa(t.ReducedWorkWeekHours),
		})
	}
	return records
}
