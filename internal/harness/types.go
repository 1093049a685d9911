package harness

import (
	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/passes"
)

// Result contains the outcome of running a scenario.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Input and Output are the programs before and after the pipeline.
	Input  []ast.Command `json:"-"`
	Output []ast.Command `json:"-"`

	// Rendered is Output printed one command per line.
	Rendered string `json:"rendered"`

	// Stats summarises the rewrite.
	Stats passes.Stats `json:"stats"`

	// Errors contains one message per failed assertion.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err error) {
	r.Pass = false
	r.Errors = append(r.Errors, err.Error())
}
