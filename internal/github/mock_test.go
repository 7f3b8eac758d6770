package github

import (
	"context"

	"github.com/google/go-github/v67/github"
	"github.com/stretchr/testify/mock"
)

// MockLabelService is a mock implementation of LabelService
type MockLabelService struct {
	mock.Mock
}

func (m *MockLabelService) RemoveLabelForIssue(ctx context.Context, owner, repo string, number int, label string) (*github.Response, error) {
	args := m.Called(ctx, owner, repo, number, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.Response), args.Error(1)
}

type recordingAnnotator struct {
	warnings []string
}

func (a *recordingAnnotator) Warning(msg string) {
	a.warnings = append(a.warnings, msg)
}
