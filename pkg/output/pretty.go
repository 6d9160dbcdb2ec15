package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/iwvelando/buhcalc/internal/calc"
	"github.com/iwvelando/buhcalc/pkg/format"
	"github.com/shopspring/decimal"
)

// PrettyFormat writes a human-readable report for a calculation result.
func PrettyFormat(w io.Writer, result any, opts Options) error {
	lw := &lineWriter{w: w}
	switch r := result.(type) {
	case calc.SalaryResult:
		prettySalary(lw, r)
	case calc.IncomeTaxResult:
		prettyIncomeTax(lw, r)
	case calc.ContributionsResult:
		prettyContributions(lw, r)
		if opts.Schedule {
			lw.println("")
			if lw.err == nil {
				lw.err = ScheduleTable(w, r)
			}
		}
	case calc.VATResult:
		prettyVAT(lw, r)
	case calc.TransportTaxResult:
		prettyTransport(lw, r)
	case calc.SimplifiedTaxCard:
		prettySimplified(lw, r)
	case []calc.TerritoryInfo:
		if lw.err == nil {
			lw.err = territoryTable(w, r)
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedResult, result)
	}
	return lw.err
}

func rub(v decimal.Decimal) string {
	return format.Currency(v)
}

func prettySalary(lw *lineWriter, r calc.SalaryResult) {
	lw.println("Расчёт зарплаты")
	lw.printf("Территория: %s (группа %s)\n", r.TerritoryName, r.Territory.Key())
	lw.printf("РК: %s | Надбавка: %d%%\n", format.Number(r.Coefficient), r.AllowancePercent)
	if r.AllowanceClamped {
		lw.printf("Запрошенная надбавка %d%% выше максимума для территории, применено %d%%\n",
			r.RequestedPercent, r.AllowancePercent)
	}
	lw.println("")
	lw.printf("Оклад: %s\n", rub(r.Base))
	lw.printf("РК (%s): +%s\n", format.Number(r.Coefficient.Sub(decimal.NewFromInt(1))), rub(r.CoefficientAddition))
	lw.printf("Надбавка (%d%%): +%s\n", r.AllowancePercent, rub(r.AllowanceAddition))
	lw.printf("Начислено: %s\n", rub(r.Gross))
	lw.println("")
	lw.printf("НДФЛ (основная часть): %s/мес\n", rub(r.IncomeTaxBase))
	lw.printf("НДФЛ (северная часть): %s/мес\n", rub(r.IncomeTaxNorthern))
	lw.printf("НДФЛ итого: −%s\n", rub(r.IncomeTaxWithheld))
	lw.printf("На руки: %s\n", rub(r.Net))
	lw.println("")
	lw.printf("Страховые взносы (%s): %s/мес\n", format.Rate(r.ContributionRate), rub(r.EmployerContributions))
	lw.printf("Полная стоимость сотрудника: %s\n", rub(r.EmployerCost))
	if r.BelowMinimumWage {
		lw.printf("\nВнимание: оклад ниже МРОТ (%s)\n", rub(r.MinimumWage))
	}
	lw.println("")
	lw.printf("Доп. отпуск: %d кал. дней\n", r.ExtraVacationDays)
	lw.printf("Раб. неделя (жен.): %d ч\n", r.ReducedWorkWeekHours)
}

func prettyIncomeTax(lw *lineWriter, r calc.IncomeTaxResult) {
	lw.println("НДФЛ: прогрессивная шкала")
	lw.println("")
	lw.printf("Годовой доход: %s\n", rub(r.AnnualIncome))
	lw.println("")
	for _, tier := range r.Tiers {
		lw.printf("  %s–%s: %s = %s\n", format.NumericCurrency(tier.From), format.NumericCurrency(tier.To),
			format.Rate(tier.Rate), rub(tier.Tax))
	}
	lw.println("")
	lw.printf("НДФЛ за год: %s\n", rub(r.Tax))
	lw.printf("Эффективная ставка: %s\n", format.Percent(r.EffectiveRate))
	lw.printf("После НДФЛ: %s\n", rub(r.NetAnnual))
	lw.printf("В месяц (после НДФЛ): %s\n", rub(r.NetMonthly))
}

func prettyContributions(lw *lineWriter, r calc.ContributionsResult) {
	lw.println("Страховые взносы")
	lw.println("")
	lw.printf("Ежемесячная зарплата: %s\n", rub(r.MonthlySalary))
	lw.printf("Годовой ФОТ: %s\n", rub(r.AnnualSalary))
	lw.printf("ЕПБ: %s\n", rub(r.Threshold))
	lw.println("")
	lw.printf("Ставка до ЕПБ: %s\n", format.Rate(r.BaseRate))
	lw.printf("Ставка свыше ЕПБ: %s\n", format.Rate(r.AboveRate))
	lw.println("")
	lw.printf("Взносы в месяц (до ЕПБ): %s\n", rub(r.MonthlyAtBaseRate))
	lw.printf("Взносы за год: %s\n", rub(r.Total))
	lw.println("")
	lw.printf("ЕПБ исчерпана в: %s\n", exhaustion(r))
}

func exhaustion(r calc.ContributionsResult) string {
	if !r.Exhausted {
		return "не исчерпана за год"
	}
	return format.Month(r.ExhaustionMonth)
}

// ScheduleTable writes the month-by-month contributions table.
func ScheduleTable(w io.Writer, r calc.ContributionsResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	lw := &lineWriter{w: tw}
	lw.println("Месяц\tЗарплата, ₽\tНарастающий итог, ₽\tСтавка\tВзносы, ₽\tЕПБ исчерп.\t")
	for _, row := range r.Schedule {
		lw.printf("%s\t%s\t%s\t%s\t%s\t%s\t\n",
			format.MonthTitle(row.Month),
			format.NumericCurrency(row.Salary),
			format.NumericCurrency(row.Cumulative),
			regimeLabel(r, row.Regime),
			format.NumericCurrency(row.Contribution),
			crossMark(row.Crosses))
	}
	lw.printf("ИТОГО\t%s\t\t\t%s\t\t\n", format.NumericCurrency(r.AnnualSalary), format.NumericCurrency(r.ScheduleTotal))
	if lw.err != nil {
		return lw.err
	}
	return tw.Flush()
}

func regimeLabel(r calc.ContributionsResult, regime calc.Regime) string {
	switch regime {
	case calc.RegimeBase:
		return format.Rate(r.BaseRate)
	case calc.RegimeAbove:
		return format.Rate(r.AboveRate)
	}
	return "переход"
}

func crossMark(crosses bool) string {
	if crosses {
		return "✓"
	}
	return ""
}

func prettyVAT(lw *lineWriter, r calc.VATResult) {
	lw.printf("Расчёт НДС (%s)\n", r.Rate)
	lw.println("")
	lw.printf("Сумма без НДС: %s\n", rub(r.Amount))
	lw.printf("НДС (%s): %s\n", r.Rate, rub(r.VAT))
	lw.printf("Итого с НДС: %s\n", rub(r.Total))
	lw.println("")
	lw.println("Обратный расчёт:")
	lw.printf("Сумма с НДС: %s\n", rub(r.Total))
	lw.printf("В т.ч. НДС: %s\n", rub(r.VATFromTotal))
	lw.printf("Без НДС: %s\n", rub(r.NetFromTotal))
}

func prettyTransport(lw *lineWriter, r calc.TransportTaxResult) {
	lw.println("Транспортный налог")
	lw.println("")
	lw.printf("Тип ТС: %s\n", r.Title)
	lw.printf("Мощность: %d л.с.\n", r.Horsepower)
	lw.printf("Ставка: %s/л.с.\n", rub(r.Rate))
	lw.println("")
	lw.printf("Налог за год: %s\n", rub(r.Tax))
	if r.Law != "" {
		lw.println("")
		lw.println(r.Law)
	}
}

func prettySimplified(lw *lineWriter, r calc.SimplifiedTaxCard) {
	lw.printf("УСН: %s, %d\n", r.Region, r.Year)
	lw.println(r.Law)
	lw.println("")
	lw.println("Доходы:")
	lw.printf("  Стандартная: %s\n", format.Percent(r.IncomeStandard))
	lw.printf("  Льготная: %s\n", format.Percent(r.IncomeReduced))
	lw.println("")
	lw.println("Доходы минус расходы:")
	lw.printf("  Стандартная: %s\n", format.Percent(r.IncomeExpenseStandard))
	lw.printf("  Льготная: %s\n", format.Percent(r.IncomeExpenseReduced))
	lw.println("")
	lw.printf("Доля льготной деятельности: ≥%s\n", format.Percent(r.MinPreferentialShare))
	if len(r.PreferentialActivities) > 0 {
		lw.println("")
		lw.println("Льготные виды деятельности:")
		lw.println("• " + strings.Join(r.PreferentialActivities, "\n• "))
	}
}

func territoryTable(w io.Writer, list []calc.TerritoryInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	lw := &lineWriter{w: tw}
	lw.println("Группа\tТерритория\tРК\tНадбавка до\tДоп. отпуск\tРаб. неделя (жен.)")
	for _, t := range list {
		lw.printf("%s\t%s\t%s\t%d%%\t%d кал. дн.\t%d ч\n",
			t.Territory.Key(), t.Name, format.Number(t.Coefficient),
			t.MaxAllowancePercent, t.ExtraVacationDays, t.ReducedWorkWeekHours)
	}
	if lw.err != nil {
		return lw.err
	}
	return tw.Flush()
}
