package output

import "github.com/firefly/retirement-planner/internal/domain"

// DefaultAssumptions lists the built-in assumptions, rendered when a report carries none.
var DefaultAssumptions = domain.DefaultAssumptions().Summary()

func assumptionsFor(r *Report) []string {
	if len(r.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return r.Assumptions
}
