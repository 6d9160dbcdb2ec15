// Package format renders amounts and dates the way Russian payroll documents
// print them: non-breaking spaces between thousands and a decimal comma.
package format

import (
	"strings"
	"time"

	"github.com/iwvelando/buhcalc/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ThousandsSeparator is the non-breaking space placed between digit groups.
const ThousandsSeparator = '\u00a0'

// Currency returns an amount with separators and the ruble sign (e.g., "-1 234,56 ₽").
func Currency(amount decimal.Decimal) string {
	return NumericCurrency(amount) + " " + constants.CurrencySymbol
}

// NumericCurrency returns an amount with separators but no currency sign (e.g., "-1 234,56").
func NumericCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(constants.DecimalPlaces)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + formatPositiveCurrency(rounded.Abs())
}

// Percent prints percent points with a decimal comma and no trailing zeros (15.1 -> "15,1%").
func Percent(points decimal.Decimal) string {
	return strings.Replace(points.String(), ".", ",", 1) + "%"
}

// Rate prints a fractional rate as percent points (0.151 -> "15,1%").
func Rate(rate decimal.Decimal) string {
	return Percent(rate.Mul(decimal.NewFromInt(constants.PercentageMultiplier)))
}

// Number prints an exact decimal with a decimal comma (1.3 -> "1,3").
func Number(v decimal.Decimal) string {
	return strings.Replace(v.String(), ".", ",", 1)
}

var monthNames = [...]string{
	"январь", "февраль", "март", "апрель", "май", "июнь",
	"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
}

// Month returns the Russian name of a month, lower case as used mid-sentence.
func Month(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// MonthTitle returns the capitalized Russian name of a month for table cells.
func MonthTitle(m time.Month) string {
	return cases.Title(language.Russian).String(Month(m))
}

func formatPositiveCurrency(value decimal.Decimal) string {
	formatted := value.StringFixed(constants.DecimalPlaces)
	intPart, decPart, _ := strings.Cut(formatted, ".")

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteRune(ThousandsSeparator)
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "," + decPart
}
