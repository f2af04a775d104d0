package output

import "testing"

func TestAnalyzeScenariosPicksHighestReadiness(t *testing.T) {
	rec := AnalyzeScenarios(buildScenarioReport())
	if rec.ScenarioName != "B" {
		t.Fatalf("expected B, got %s", rec.ScenarioName)
	}
	if !rec.ReadinessChange.Equal(dec("20")) {
		t.Fatalf("readiness change = %s, want 20", rec.ReadinessChange)
	}
	if !rec.MonthlySavingsChange.Equal(dec("-400")) {
		t.Fatalf("monthly savings change = %s, want -400", rec.MonthlySavingsChange)
	}
}

func TestAnalyzeScenariosTieBreaksOnSavings(t *testing.T) {
	report := buildScenarioReport()
	report.Scenarios[1].ReadinessScore = dec("80")
	report.Scenarios[1].RequiredMonthlySavings = dec("300")
	report.Readiness = nil

	rec := AnalyzeScenarios(report)
	if rec.ScenarioName != "A" {
		t.Fatalf("expected A on the savings tie-break, got %s", rec.ScenarioName)
	}
	if !rec.ReadinessChange.IsZero() {
		t.Fatalf("no baseline means no delta, got %s", rec.ReadinessChange)
	}
}

func TestAnalyzeScenariosEmpty(t *testing.T) {
	if rec := AnalyzeScenarios(&Report{}); rec.ScenarioName != "" {
		t.Fatalf("expected empty recommendation, got %+v", rec)
	}
}
