package main

import (
	"fmt"

	"github.com/firefly/retirement-planner/internal/calculation"
	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/firefly/retirement-planner/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	var standard, skipMonteCarlo bool
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis: projection, FIRE, Monte Carlo and scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			analysisOpts := calculation.AnalysisOptions{
				Scenarios: s.config.Scenarios,
				Standard:  standard,
			}
			if !skipMonteCarlo {
				mc, err := opts.monteCarloConfig(s)
				if err != nil {
					return err
				}
				analysisOpts.MonteCarlo = &mc
			}
			analysis, err := s.engine.RunAnalysis(s.config.Profile, s.config.Plan, analysisOpts)
			if err != nil {
				return err
			}
			return opts.emit(cmd, output.NewAnalysisReport(analysis, s.config.Portfolio))
		},
	}
	cmd.Flags().BoolVar(&standard, "standard", false, "include the standard scenario suite")
	cmd.Flags().BoolVar(&skipMonteCarlo, "no-montecarlo", false, "skip the Monte Carlo simulation")
	return cmd
}

func newProjectCmd(opts *options) *cobra.Command {
	var startYear int
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the portfolio year by year to retirement and through withdrawal",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			po := calculation.ProjectionOptions{StartYear: startYear}
			acc := s.engine.ProjectToRetirementWithOptions(s.config.Profile, s.config.Plan, po)
			w := s.engine.ProjectWithdrawal(s.config.Profile, s.config.Plan, acc, po)

			report := baseReport("Retirement Projection", s)
			report.Projection = &acc
			report.Withdrawal = &w
			return opts.emit(cmd, report)
		},
	}
	cmd.Flags().IntVar(&startYear, "start-year", 0, "calendar year of the first row (defaults to the valuation year)")
	return cmd
}

func newWithdrawCmd(opts *options) *cobra.Command {
	var years int
	var starting string
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Project the withdrawal phase from the projected (or a given) portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			acc := s.engine.ProjectToRetirement(s.config.Profile, s.config.Plan)
			if starting != "" {
				v, err := decimal.NewFromString(starting)
				if err != nil {
					return fmt.Errorf("invalid --portfolio %q: %w", starting, err)
				}
				acc = domain.RetirementProjection{FinalPortfolioValue: v}
			}
			w := s.engine.ProjectWithdrawal(s.config.Profile, s.config.Plan, acc, calculation.ProjectionOptions{WithdrawalYears: years})

			report := baseReport("Withdrawal Projection", s)
			report.Withdrawal = &w
			return opts.emit(cmd, report)
		},
	}
	cmd.Flags().IntVar(&years, "years", 0, "withdrawal horizon in years (0 uses the assumptions)")
	cmd.Flags().StringVar(&starting, "portfolio", "", "starting portfolio value instead of the projected one")
	return cmd
}

func newMonteCarloCmd(opts *options) *cobra.Command {
	var csvDir string
	cmd := &cobra.Command{
		Use:     "montecarlo",
		Aliases: []string{"mc"},
		Short:   "Run a seeded Monte Carlo simulation of the accumulation phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			mc, err := opts.monteCarloConfig(s)
			if err != nil {
				return err
			}
			res, err := s.engine.RunMonteCarlo(s.config.Profile, s.config.Plan, mc)
			if err != nil {
				return err
			}
			if csvDir != "" {
				csvReport := output.MonteCarloCSVReport{Result: res}
				if err := csvReport.GenerateAllCSVReports(csvDir); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Monte Carlo CSV files written to %s\n", csvDir)
			}

			report := baseReport("Monte Carlo Simulation", s)
			report.MonteCarlo = res
			return opts.emit(cmd, report)
		},
	}
	cmd.Flags().StringVar(&csvDir, "csv-dir", "", "also write summary, detailed and percentile CSV files here")
	return cmd
}

func newFIRECmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fire",
		Short: "Compute FIRE numbers, progress and years to financial independence",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			m := s.engine.FIREMetrics(s.config.Profile, s.config.Plan)
			report := baseReport("FIRE Metrics", s)
			report.FIRE = &m
			return opts.emit(cmd, report)
		},
	}
}

func newScenariosCmd(opts *options) *cobra.Command {
	var standard bool
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Evaluate the configured what-if scenarios and compare them",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			analyzer := s.engine.NewScenarioAnalyzer(s.config.Profile, s.config.Plan)
			var results []domain.ScenarioResult
			if standard || len(s.config.Scenarios) == 0 {
				results, err = analyzer.RunStandardScenarios()
				if err != nil {
					return err
				}
			}
			for _, spec := range s.config.Scenarios {
				r, err := analyzer.Analyze(spec)
				if err != nil {
					return fmt.Errorf("scenario %q: %w", spec.Name, err)
				}
				results = append(results, r)
			}
			comparison := calculation.CompareScenarios(results)

			report := baseReport("Scenario Comparison", s)
			report.Scenarios = results
			report.Comparison = &comparison
			return opts.emit(cmd, report)
		},
	}
	cmd.Flags().BoolVar(&standard, "standard", false, "include the standard scenario suite alongside the configured scenarios")
	return cmd
}

func newSweepCmd(opts *options) *cobra.Command {
	var param, lo, hi string
	var steps int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate one scenario parameter at evenly spaced values",
		Example: "  firefly sweep --param return_rate --min 0.03 --max 0.09 --steps 7\n" +
			"  firefly sweep --param retirement_age --min 55 --max 67 --steps 13",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			from, err := decimal.NewFromString(lo)
			if err != nil {
				return fmt.Errorf("invalid --min %q: %w", lo, err)
			}
			to, err := decimal.NewFromString(hi)
			if err != nil {
				return fmt.Errorf("invalid --max %q: %w", hi, err)
			}
			analyzer := s.engine.NewScenarioAnalyzer(s.config.Profile, s.config.Plan)
			sweep, err := analyzer.Sweep(domain.ScenarioKind(param), from, to, steps)
			if err != nil {
				return err
			}

			report := baseReport("Sensitivity Sweep", s)
			report.Sweep = sweep
			report.Scenarios = sweep.Results
			report.Comparison = &sweep.Comparison
			return opts.emit(cmd, report)
		},
	}
	cmd.Flags().StringVar(&param, "param", string(domain.ScenarioReturnRate), "parameter to sweep: return_rate, savings_rate, retirement_age, income_change, expense_change")
	cmd.Flags().StringVar(&lo, "min", "0.03", "lowest value")
	cmd.Flags().StringVar(&hi, "max", "0.09", "highest value")
	cmd.Flags().IntVar(&steps, "steps", 7, "number of evenly spaced values")
	return cmd
}

func newExampleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			filename := "firefly_example.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			if err := output.SaveConfiguration(s.config, filename); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", filename)
			return nil
		},
	}
}
