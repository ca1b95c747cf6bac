package migration

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of a single step.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StepStats is what a step reports back on success.
type StepStats struct {
	Rows    int // Rows upserted
	Skipped int // Records dropped as malformed or unfetchable
}

// StepResult records how one step went.
type StepResult struct {
	Name     string        `json:"name"`
	Fatal    bool          `json:"fatal"`
	Status   Status        `json:"status"`
	Rows     int           `json:"rows"`
	Skipped  int           `json:"skipped"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Report is the structured result of one migration run.
type Report struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Steps      []StepResult `json:"steps"`
}

func newReport() *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

func (r *Report) add(result StepResult) {
	r.Steps = append(r.Steps, result)
}

func (r *Report) finish() {
	r.FinishedAt = time.Now().UTC()
}

// Step returns the result of the named step, or nil if it was never reached.
func (r *Report) Step(name string) *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Name == name {
			return &r.Steps[i]
		}
	}
	return nil
}

// Succeeded reports whether every fatal step completed.
func (r *Report) Succeeded() bool {
	for _, s := range r.Steps {
		if s.Fatal && s.Status != StatusOK {
			return false
		}
	}
	return true
}

// Failed returns the steps that ran and failed.
func (r *Report) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			failed = append(failed, s)
		}
	}
	return failed
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// JSON encodes the report for storage in the metadata table.
func (r *Report) JSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
