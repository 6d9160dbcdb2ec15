package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/buhcalc/internal/calc"
	"github.com/iwvelando/buhcalc/pkg/testutil"
)

func testEngine(t *testing.T) *calc.Engine {
	t.Helper()
	e, err := calc.NewEngine(testutil.SyntheticTables())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func render(t *testing.T, outputFormat string, result any, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, outputFormat, result, opts); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, output string, expected ...string) {
	t.Helper()
	for _, s := range expected {
		if !strings.Contains(output, s) {
			t.Errorf("output missing %q\n%s", s, output)
		}
	}
}

func TestPrettySalary(t *testing.T) {
	r, err := testEngine(t).Salary("A", 50000, 50)
	if err != nil {
		t.Fatal(err)
	}
	out := render(t, "pretty", r, Options{})
	assertContains(t, out,
		"Расчёт зарплаты",
		"Территория: Test south (группа А)",
		"РК: 1,3 | Надбавка: 30%",
		"Запрошенная надбавка 50%",
		"Оклад: 50\u00a0000,00 ₽",
		"РК (0,3): +15\u00a0000,00 ₽",
		"Начислено: 80\u00a0000,00 ₽",
		"НДФЛ итого: −18\u00a0850,00 ₽",
		"На руки: 61\u00a0150,00 ₽",
		"Страховые взносы (30%): 24\u00a0000,00 ₽/мес",
		"Доп. отпуск: 8 кал. дней",
	)
	if strings.Contains(out, "МРОТ") {
		t.Errorf("unexpected minimum wage warning\n%s", out)
	}
}

func TestPrettySalaryMinimumWageWarning(t *testing.T) {
	r, err := testEngine(t).Salary("Б", 20000, 0)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, render(t, "pretty", r, Options{}), "оклад ниже МРОТ (30\u00a0000,00 ₽)")
}

func TestPrettyIncomeTax(t *testing.T) {
	r, err := testEngine(t).IncomeTax(6000)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, render(t, "pretty", r, Options{}),
		"Годовой доход: 6\u00a0000,00 ₽",
		"0,00–1\u00a0000,00: 10% = 100,00 ₽",
		"5\u00a0000,00–6\u00a0000,00: 30% = 300,00 ₽",
		"НДФЛ за год: 1\u00a0200,00 ₽",
		"Эффективная ставка: 20%",
		"В месяц (после НДФЛ): 400,00 ₽",
	)
}

func TestPrettyContributions(t *testing.T) {
	e := testEngine(t)

	r, err := e.Contributions(250000)
	if err != nil {
		t.Fatal(err)
	}
	out := render(t, "pretty", r, Options{})
	assertContains(t, out,
		"Ставка до ЕПБ: 30%",
		"Ставка свыше ЕПБ: 15,1%",
		"Взносы за год: 631\u00a0800,00 ₽",
		"ЕПБ исчерпана в: май",
	)
	if strings.Contains(out, "Нарастающий итог") {
		t.Errorf("schedule printed without Options.Schedule\n%s", out)
	}

	out = render(t, "pretty", r, Options{Schedule: true})
	assertContains(t, out, "Нарастающий итог, ₽", "Май", "переход", "✓", "ИТОГО")

	r, err = e.Contributions(50000)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, render(t, "pretty", r, Options{}), "ЕПБ исчерпана в: не исчерпана за год")
}

func TestPrettyVATAndTransport(t *testing.T) {
	e := testEngine(t)

	vat, err := e.VAT(100000, 22)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, render(t, "pretty", vat, Options{}),
		"Расчёт НДС (22%)",
		"Итого с НДС: 122\u00a0000,00 ₽",
		"В т.ч. НДС: 22\u00a0000,00 ₽",
		"Без НДС: 100\u00a0000,00 ₽",
	)

	tax, err := e.TransportTax("car", 150)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, render(t, "pretty", tax, Options{}),
		"Мощность: 150 л.с.",
		"Ставка: 20,00 ₽/л.с.",
		"Налог за год: 3\u00a0000,00 ₽",
		"Test law",
	)
}

func TestPrettyReferenceCards(t *testing.T) {
	e := testEngine(t)
	assertContains(t, render(t, "pretty", e.SimplifiedTax(), Options{}),
		"Test USN law", "Стандартная: 6%", "Льготная: 1%", "Доля льготной деятельности: ≥70%")
	assertContains(t, render(t, "pretty", e.Territories(), Options{}),
		"Группа", "Test south", "Test north", "80%")
}

func TestCsvSchedule(t *testing.T) {
	r, err := testEngine(t).Contributions(250000)
	if err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(strings.NewReader(render(t, "csv", r, Options{}))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != 14 {
		t.Fatalf("expected header, 12 months and a total row, got %d rows", len(records))
	}

	tests := []struct {
		name     string
		row      int
		expected []string
	}{
		{"January", 1, []string{"Январь", "250000.00", "250000.00", "30", "75000.00", ""}},
		{"May crosses the threshold", 5, []string{"Май", "250000.00", "1250000.00", "переход", "67550.00", "✓"}},
		{"December", 12, []string{"Декабрь", "250000.00", "3000000.00", "15.1", "37750.00", ""}},
		{"Total", 13, []string{"ИТОГО", "3000000.00", "", "", "631800.00", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Join(records[tt.row], "|"); got != strings.Join(tt.expected, "|") {
				t.Errorf("row %d = %q, expected %q", tt.row, got, strings.Join(tt.expected, "|"))
			}
		})
	}
}

func TestCsvIncomeTax(t *testing.T) {
	r, err := testEngine(t).IncomeTax(6000)
	if err != nil {
		t.Fatal(err)
	}
	out := render(t, "csv", r, Options{})
	assertContains(t, out,
		"1000.00,5000.00,20,4000.00,800.00\n",
		"ИТОГО,,,6000.00,1200.00\n",
	)
}

func TestCsvSalaryAndVAT(t *testing.T) {
	e := testEngine(t)

	s, err := e.Salary("A", 50000, 30)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, render(t, "csv", s, Options{}),
		"Начислено (gross),80000.00\n",
		"\"Страховые взносы (30%), мес.\",24000.00\n",
		"Полная стоимость сотрудника,104000.00\n",
	)

	v, err := e.VAT(999, 22)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, render(t, "csv", v, Options{}), "НДС,219.78\n", "Итого с НДС,1218.78\n")
}

func TestWriteErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "json", calc.VATResult{}, Options{}); err == nil {
		t.Error("expected error for unknown output format")
	}
	for _, f := range []string{"pretty", "csv"} {
		err := Write(&buf, f, 42, Options{})
		if !errors.Is(err, ErrUnsupportedResult) {
			t.Errorf("Write(%s, int) error = %v, expected ErrUnsupportedResult", f, err)
		}
	}
}
