package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/firefly/retirement-planner/internal/domain"
)

// MonteCarloCSVReport generates CSV exports for Monte Carlo results
type MonteCarloCSVReport struct {
	Result *domain.MonteCarloResults
}

// GenerateSummaryCSV creates a summary CSV with aggregate statistics
func (m *MonteCarloCSVReport) GenerateSummaryCSV(outputPath string) error {
	return writeCSVFile(outputPath, m.writeSummary)
}

// GenerateDetailedCSV creates a detailed CSV with individual simulation results
func (m *MonteCarloCSVReport) GenerateDetailedCSV(outputPath string) error {
	return writeCSVFile(outputPath, m.writeDetailed)
}

// GeneratePercentileCSV creates a CSV with the percentile breakdown
func (m *MonteCarloCSVReport) GeneratePercentileCSV(outputPath string) error {
	return writeCSVFile(outputPath, m.writePercentiles)
}

// GenerateAllCSVReports creates all CSV reports in a single directory
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := m.GenerateSummaryCSV(filepath.Join(outputDir, "monte_carlo_summary.csv")); err != nil {
		return fmt.Errorf("failed to generate summary CSV: %w", err)
	}
	if err := m.GenerateDetailedCSV(filepath.Join(outputDir, "monte_carlo_detailed.csv")); err != nil {
		return fmt.Errorf("failed to generate detailed CSV: %w", err)
	}
	if err := m.GeneratePercentileCSV(filepath.Join(outputDir, "monte_carlo_percentiles.csv")); err != nil {
		return fmt.Errorf("failed to generate percentile CSV: %w", err)
	}
	return nil
}

func (m *MonteCarloCSVReport) writeSummary(w *csv.Writer) error {
	r := m.Result
	if err := w.Write([]string{"Metric", "Value", "Description"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	rows := [][]string{
		{"Success Rate", FormatRate(r.SuccessRate), "Share of trials reaching the required portfolio"},
		{"Required Portfolio", "$" + r.RequiredPortfolioValue.StringFixed(0), "Portfolio needed at retirement"},
		{"Median Ending Balance", "$" + r.MedianEndingBalance.StringFixed(0), "Median portfolio at retirement"},
		{"10th Percentile Balance", "$" + r.PercentileRanges.P10.StringFixed(0), "Worst 10% of trials end below this"},
		{"90th Percentile Balance", "$" + r.PercentileRanges.P90.StringFixed(0), "Best 10% of trials end above this"},
		{"Number of Simulations", strconv.Itoa(r.NumSimulations), "Total number of simulations run"},
		{"Seed", strconv.FormatInt(r.Seed, 10), "Seed that reproduces this run"},
	}
	if r.FullHorizon {
		rows = append(rows,
			[]string{"Survival Rate", FormatRate(r.SurvivalRate), "Share of trials funding the whole withdrawal horizon"},
			[]string{"Median Years Funded", strconv.Itoa(r.MedianYearsFunded), "Median withdrawal years covered"},
		)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	return nil
}

func (m *MonteCarloCSVReport) writeDetailed(w *csv.Writer) error {
	header := []string{"SimulationID", "Success", "EndingBalance", "YearsFunded", "Survived"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, sim := range m.Result.Outcomes {
		row := []string{
			intToString(sim.Trial),
			boolToString(sim.Success),
			sim.EndingBalance.StringFixed(2),
			intToString(sim.YearsFunded),
			boolToString(sim.Survived),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write simulation row: %w", err)
		}
	}
	return nil
}

func (m *MonteCarloCSVReport) writePercentiles(w *csv.Writer) error {
	if err := w.Write([]string{"Percentile", "EndingBalance", "Interpretation"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	p := m.Result.PercentileRanges
	rows := [][]string{
		{"10th", "$" + p.P10.StringFixed(0), "Worst 10% of scenarios"},
		{"25th", "$" + p.P25.StringFixed(0), "Below average scenarios"},
		{"50th (Median)", "$" + p.P50.StringFixed(0), "Typical scenario"},
		{"75th", "$" + p.P75.StringFixed(0), "Above average scenarios"},
		{"90th", "$" + p.P90.StringFixed(0), "Best 10% of scenarios"},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write percentile row: %w", err)
		}
	}
	return nil
}

func writeCSVFile(path string, write func(*csv.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := write(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// MonteCarloCSVFormatter renders the simulation summary and percentiles as one CSV.
type MonteCarloCSVFormatter struct{}

func (MonteCarloCSVFormatter) Name() string { return "montecarlo-csv" }

func (MonteCarloCSVFormatter) Format(report *Report) ([]byte, error) {
	if report.MonteCarlo == nil {
		return nil, errors.New("report has no Monte Carlo results")
	}
	m := &MonteCarloCSVReport{Result: report.MonteCarlo}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := m.writeSummary(w); err != nil {
		return nil, err
	}
	if err := w.Write(nil); err != nil {
		return nil, err
	}
	if err := m.writePercentiles(w); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
