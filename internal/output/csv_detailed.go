package output

import (
	"bytes"
	"encoding/csv"

	"github.com/firefly/retirement-planner/internal/domain"
)

// CSVDetailedExporter provides the raw yearly rows of both projection phases.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Phase", "Year", "Age", "PortfolioValue", "Contribution", "InvestmentReturn", "Expenses", "NetWorth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	write := func(phase string, rows []domain.YearlyProjection) error {
		for _, yr := range rows {
			row := []string{
				phase,
				intToString(yr.Year),
				intToString(yr.Age),
				yr.PortfolioValue.StringFixed(2),
				yr.Contribution.StringFixed(2),
				yr.InvestmentReturn.StringFixed(2),
				yr.Expenses.StringFixed(2),
				yr.NetWorth.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if report.Projection != nil {
		if err := write("accumulation", report.Projection.YearlyProjections); err != nil {
			return nil, err
		}
	}
	if report.Withdrawal != nil {
		if err := write("withdrawal", report.Withdrawal.YearlyProjections); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
