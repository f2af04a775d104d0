package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strings"

	"github.com/firefly/retirement-planner/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "ReadinessScore", "RequiredMonthlySavings", "ProjectedValue", "YearsToFI", "Changes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioResult(nil), report.Scenarios...)
	sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		row := []string{
			sc.Name,
			sc.ReadinessScore.StringFixed(2),
			sc.RequiredMonthlySavings.StringFixed(2),
			sc.ProjectedValue.StringFixed(2),
			intToString(sc.YearsToFI),
			formatChanges(sc.Changes),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// formatChanges renders a change map as sorted key=value pairs.
func formatChanges(changes map[string]string) string {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + changes[k]
	}
	return strings.Join(parts, ";")
}
