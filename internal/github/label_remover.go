package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/douhashi/remove-labels/internal/logger"
	"github.com/google/go-github/v67/github"
)

// LabelService defines the GitHub label operation used by LabelRemover.
// *github.IssuesService satisfies it.
type LabelService interface {
	RemoveLabelForIssue(ctx context.Context, owner, repo string, number int, label string) (*github.Response, error)
}

// Annotator surfaces per-label failures to the workflow UI.
type Annotator interface {
	Warning(msg string)
}

// RemovalRequest identifies the issue or pull request and the labels to take off it.
type RemovalRequest struct {
	Owner       string
	Repo        string
	IssueNumber int
	Labels      []string
}

// NewRemovalRequest copies labels so later changes by the caller do not leak into the request.
func NewRemovalRequest(owner, repo string, issueNumber int, labels []string) RemovalRequest {
	return RemovalRequest{
		Owner:       owner,
		Repo:        repo,
		IssueNumber: issueNumber,
		Labels:      append([]string(nil), labels...),
	}
}

func (r RemovalRequest) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.IssueNumber)
}

// RemovalOutcome is the result of one remove-label call.
type RemovalOutcome struct {
	Label     string
	Succeeded bool
	Err       error
}

// ErrorDetail returns the failure text, or "" for a successful removal.
func (o RemovalOutcome) ErrorDetail() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// LabelRemovalError reports the labels that could not be removed, in the order they were attempted.
type LabelRemovalError struct {
	Labels   []string
	Outcomes []RemovalOutcome
}

func (e *LabelRemovalError) Error() string {
	return "failed to remove labels: " + strings.Join(e.Labels, ",")
}

// LabelRemover removes labels from a single issue or pull request one at a time.
type LabelRemover struct {
	client    LabelService
	logger    logger.Logger
	annotator Annotator
}

// RemoverOption configures a LabelRemover.
type RemoverOption func(*LabelRemover)

// WithAnnotator emits a workflow warning for every failed label in addition to the log line.
func WithAnnotator(a Annotator) RemoverOption {
	return func(r *LabelRemover) {
		r.annotator = a
	}
}

// NewLabelRemover creates a new LabelRemover instance
func NewLabelRemover(client LabelService, log logger.Logger, opts ...RemoverOption) *LabelRemover {
	if log == nil {
		log = logger.NewNop()
	}
	r := &LabelRemover{client: client, logger: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Remove attempts every label in order and returns one outcome per label.
// A failed call never stops the loop.
func (r *LabelRemover) Remove(ctx context.Context, req RemovalRequest) []RemovalOutcome {
	if len(req.Labels) == 0 {
		return nil
	}

	log := r.logger.WithFields("issue", req.String())
	outcomes := make([]RemovalOutcome, 0, len(req.Labels))

	for _, label := range req.Labels {
		_, err := r.client.RemoveLabelForIssue(ctx, req.Owner, req.Repo, req.IssueNumber, label)
		if err != nil {
			classified := ClassifyError(err)
			fields := []interface{}{
				"label", label,
				"error", err.Error(),
				"error_type", classified.Type.String(),
				"status_code", classified.StatusCode,
			}
			if classified.RetryAfter > 0 {
				fields = append(fields, "retry_after", classified.RetryAfter.String())
			}
			log.Warn("failed to remove label", fields...)
			if r.annotator != nil {
				r.annotator.Warning(fmt.Sprintf("failed to remove label: %s: %v", label, err))
			}
			outcomes = append(outcomes, RemovalOutcome{Label: label, Err: err})
			continue
		}

		log.Debug("label removed", "label", label)
		outcomes = append(outcomes, RemovalOutcome{Label: label, Succeeded: true})
	}

	return outcomes
}

// RemoveLabels removes every label in req and returns a *LabelRemovalError naming
// the labels that remain when at least one removal failed.
func (r *LabelRemover) RemoveLabels(ctx context.Context, req RemovalRequest) error {
	var failed []RemovalOutcome
	for _, outcome := range r.Remove(ctx, req) {
		if !outcome.Succeeded {
			failed = append(failed, outcome)
		}
	}

	if len(failed) == 0 {
		return nil
	}

	remaining := make([]string, 0, len(failed))
	for _, outcome := range failed {
		remaining = append(remaining, outcome.Label)
	}
	return &LabelRemovalError{Labels: remaining, Outcomes: failed}
}
