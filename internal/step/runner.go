// Package step wires configuration, the subscription check and label removal into one run.
package step

import (
	"context"
	"errors"

	"github.com/douhashi/remove-labels/internal/config"
	gh "github.com/douhashi/remove-labels/internal/github"
	"github.com/douhashi/remove-labels/internal/logger"
	"github.com/douhashi/remove-labels/internal/subscription"
)

// SubscriptionChecker verifies the vendor subscription.
type SubscriptionChecker interface {
	Check(ctx context.Context) error
}

// Remover removes labels from one issue or pull request.
type Remover interface {
	RemoveLabels(ctx context.Context, req gh.RemovalRequest) error
}

// RemoverFactory builds the Remover once the run knows it has work to do.
type RemoverFactory func(cfg *config.Config) (Remover, error)

// Reporter surfaces errors in the workflow UI.
type Reporter interface {
	Error(msg string)
}

// FailedError is returned by Run when an error must fail the workflow step.
type FailedError struct {
	Err error
}

func (e *FailedError) Error() string {
	return e.Err.Error()
}

func (e *FailedError) Unwrap() error {
	return e.Err
}

// Runner executes the step once.
type Runner struct {
	cfg        *config.Config
	checker    SubscriptionChecker
	newRemover RemoverFactory
	event      config.IssueNumberSource
	reporter   Reporter
	logger     logger.Logger
}

// NewRunner creates a new Runner. event may be nil when no trigger context is available.
func NewRunner(cfg *config.Config, checker SubscriptionChecker, newRemover RemoverFactory, event config.IssueNumberSource, reporter Reporter, log logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		checker:    checker,
		newRemover: newRemover,
		event:      event,
		reporter:   reporter,
		logger:     log,
	}
}

// Run returns subscription.ErrSubscriptionInvalid when the subscription is rejected, and a
// *FailedError when removal or configuration fails with fail_on_error enabled.
// Any other failure is logged and reported, and Run returns nil.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.checker.Check(ctx); errors.Is(err, subscription.ErrSubscriptionInvalid) {
		r.reporter.Error(subscription.InvalidMessage)
		return err
	}

	err := r.removeLabels(ctx)
	if err == nil {
		return nil
	}

	r.logger.Error("remove labels failed", "error", err.Error())
	r.reporter.Error(err.Error())

	if r.cfg.FailOnErrorEnabled() {
		return &FailedError{Err: err}
	}
	return nil
}

func (r *Runner) removeLabels(ctx context.Context) error {
	labels := r.cfg.LabelList()
	if len(labels) == 0 {
		r.logger.Debug("no labels given; nothing to do")
		return nil
	}

	owner, repo, err := config.ParseRepository(r.cfg.Repo)
	if err != nil {
		return err
	}

	number, err := config.ResolveIssueNumber(r.cfg.Number, r.event)
	if err != nil {
		return err
	}

	if err := r.cfg.Validate(); err != nil {
		return err
	}

	remover, err := r.newRemover(r.cfg)
	if err != nil {
		return err
	}

	req := gh.NewRemovalRequest(owner, repo, number, labels)
	r.logger.Info("removing labels", "issue", req.String(), "labels", labels)

	return remover.RemoveLabels(ctx, req)
}
