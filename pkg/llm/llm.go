package llm

import (
	"context"
	"fmt"
)

// Result is the outcome of a single completion call. A backend failure is
// carried in Err instead of being returned as a Go error: the caller decides
// whether to branch on Failed() or to flatten the result into the
// compatibility placeholder via Text().
type Result struct {
	Model   string // backend identifier the call targeted
	Content string // completion text, empty on failure
	Err     error  // transport/API/parse failure, nil on success
}

// Failed reports whether the call produced no usable completion.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Text returns the completion text, or the failure placeholder string
// identifying the backend when the call failed. Downstream aggregation
// treats the placeholder as one more candidate answer.
func (r Result) Text() string {
	if r.Err != nil {
		return fmt.Sprintf("Error: Unable to query model %s", r.Model)
	}
	return r.Content
}

// Ok builds a successful Result.
func Ok(model, content string) Result {
	return Result{Model: model, Content: content}
}

// Failure builds a failed Result.
func Failure(model string, err error) Result {
	return Result{Model: model, Err: err}
}

// Querier sends one prompt to one named backend model. Implementations make
// exactly one attempt per call and never return a Go error; every failure is
// contained in the Result. The prompt may be empty.
type Querier interface {
	Complete(ctx context.Context, model, prompt string) Result

	// Endpoint reports the base address the querier talks to, empty if unset.
	Endpoint() string
}
