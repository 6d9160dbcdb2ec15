package main

import (
	"github.com/iwvelando/buhcalc/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	salaryTerritory string
	salaryBase      int
	salaryAllowance int

	annualIncome int

	monthlySalary int
	showSchedule  bool

	vatAmount int
	vatRate   int

	vehicleCategory   string
	vehicleHorsepower int
)

var salaryCmd = &cobra.Command{
	Use:   "salary",
	Short: "Monthly gross and net pay with regional coefficient and northern allowance",
	Example: `  buhcalc salary --territory Д --base 50000 --allowance 30
  buhcalc salary --territory A --base 85000 --allowance 80`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := engine.Salary(salaryTerritory, salaryBase, salaryAllowance)
		if err != nil {
			return inputFailure("main.salary", err)
		}
		if r.AllowanceClamped {
			logger.Warn("allowance clamped to territory ceiling",
				zap.String("op", "main.salary"),
				zap.Int("requested", r.RequestedPercent),
				zap.Int("applied", r.AllowancePercent),
			)
		}
		if r.BelowMinimumWage {
			logger.Warn("base salary below minimum wage",
				zap.String("op", "main.salary"),
				zap.String("base", r.Base.String()),
				zap.String("minimumWage", r.MinimumWage.String()),
			)
		}
		return render(cmd, r, output.Options{})
	},
}

var incomeTaxCmd = &cobra.Command{
	Use:     "income-tax",
	Short:   "Annual progressive income tax with a per-tier breakdown",
	Example: "  buhcalc income-tax --income 3000000",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := engine.IncomeTax(annualIncome)
		if err != nil {
			return inputFailure("main.incomeTax", err)
		}
		return render(cmd, r, output.Options{})
	},
}

var contributionsCmd = &cobra.Command{
	Use:     "contributions",
	Short:   "Annual insurance contributions and the month the contribution cap is reached",
	Example: "  buhcalc contributions --monthly 300000 --schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := engine.Contributions(monthlySalary)
		if err != nil {
			return inputFailure("main.contributions", err)
		}
		return render(cmd, r, output.Options{Schedule: showSchedule})
	},
}

var vatCmd = &cobra.Command{
	Use:     "vat",
	Short:   "Add VAT to a net amount and extract it back from the total",
	Example: "  buhcalc vat --amount 100000 --rate 22",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := engine.VAT(vatAmount, vatRate)
		if err != nil {
			return inputFailure("main.vat", err)
		}
		return render(cmd, r, output.Options{})
	},
}

var transportCmd = &cobra.Command{
	Use:     "transport",
	Short:   "Annual transport tax for a vehicle",
	Example: "  buhcalc transport --category car --hp 150",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := engine.TransportTax(vehicleCategory, vehicleHorsepower)
		if err != nil {
			return inputFailure("main.transport", err)
		}
		return render(cmd, r, output.Options{})
	},
}

var usnCmd = &cobra.Command{
	Use:   "usn",
	Short: "Regional simplified tax system rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return render(cmd, engine.SimplifiedTax(), output.Options{})
	},
}

var territoriesCmd = &cobra.Command{
	Use:   "territories",
	Short: "Territory groups with their coefficients and allowance ceilings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return render(cmd, engine.Territories(), output.Options{})
	},
}

func init() {
	salaryCmd.Flags().StringVarP(&salaryTerritory, "territory", "t", "", "territory group: А, Б, В, Г, Д (Latin A, B, V, G, D also accepted)")
	salaryCmd.Flags().IntVarP(&salaryBase, "base", "b", 0, "monthly base salary in rubles")
	salaryCmd.Flags().IntVarP(&salaryAllowance, "allowance", "a", 0, "northern allowance in percent, capped at the territory ceiling")
	_ = salaryCmd.MarkFlagRequired("territory")
	_ = salaryCmd.MarkFlagRequired("base")

	incomeTaxCmd.Flags().IntVar(&annualIncome, "income", 0, "annual income in rubles")
	_ = incomeTaxCmd.MarkFlagRequired("income")

	contributionsCmd.Flags().IntVar(&monthlySalary, "monthly", 0, "monthly salary in rubles")
	contributionsCmd.Flags().BoolVar(&showSchedule, "schedule", false, "print the month-by-month schedule")
	_ = contributionsCmd.MarkFlagRequired("monthly")

	vatCmd.Flags().IntVar(&vatAmount, "amount", 0, "amount without VAT in rubles")
	vatCmd.Flags().IntVar(&vatRate, "rate", 22, "VAT rate in percent: 22, 10, 5, 7")
	_ = vatCmd.MarkFlagRequired("amount")

	transportCmd.Flags().StringVar(&vehicleCategory, "category", "car", "vehicle category: car, truck, bus, motorcycle")
	transportCmd.Flags().IntVar(&vehicleHorsepower, "hp", 0, "engine power in horsepower")
	_ = transportCmd.MarkFlagRequired("hp")
}
