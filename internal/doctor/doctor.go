package doctor

import "time"

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check.
	Category() string

	// Run executes the diagnostic check and returns its results.
	Run() []*CheckResult
}

// Runner executes diagnostic checks and aggregates their results.
type Runner struct {
	checks []Check
}

// NewRunner creates a runner with the default checks for the project at root.
func NewRunner(root string) *Runner {
	return &Runner{
		checks: []Check{
			NewProjectCheck(root),
			NewIOSCheck(root),
			NewAndroidCheck(root),
			NewVCSCheck(root),
		},
	}
}

// AddCheck registers an additional diagnostic check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes all registered checks and returns a report.
func (r *Runner) Run() *Report {
	report := &Report{
		Timestamp: time.Now().UTC(),
	}

	for _, check := range r.checks {
		for _, result := range check.Run() {
			report.Results = append(report.Results, result)

			switch result.Status {
			case SeverityPass:
				report.Summary.Passed++
			case SeverityInfo:
				report.Summary.Info++
			case SeverityWarning:
				report.Summary.Warnings++
			case SeverityError:
				report.Summary.Errors++
			}
		}
	}

	return report
}

// Report aggregates all check results with timing and summary.
type Report struct {
	// Timestamp is when the diagnostic run started.
	Timestamp time.Time `json:"timestamp"`

	// Results contains the outcome of each check.
	Results []*CheckResult `json:"results"`

	// Summary contains counts by severity level.
	Summary Summary `json:"summary"`
}

// HasErrors returns true if any check has SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check has SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
