package mocks

import (
	"context"

	gh "github.com/douhashi/remove-labels/internal/github"
	"github.com/stretchr/testify/mock"
)

// MockSubscriptionChecker is a mock implementation of step.SubscriptionChecker
type MockSubscriptionChecker struct {
	mock.Mock
}

// NewMockSubscriptionChecker creates a new instance of MockSubscriptionChecker
func NewMockSubscriptionChecker() *MockSubscriptionChecker {
	return &MockSubscriptionChecker{}
}

// Check mocks the Check method
func (m *MockSubscriptionChecker) Check(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRemover is a mock implementation of step.Remover
type MockRemover struct {
	mock.Mock
}

// NewMockRemover creates a new instance of MockRemover
func NewMockRemover() *MockRemover {
	return &MockRemover{}
}

// RemoveLabels mocks the RemoveLabels method
func (m *MockRemover) RemoveLabels(ctx context.Context, req gh.RemovalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockReporter is a mock implementation of step.Reporter
type MockReporter struct {
	mock.Mock
}

// NewMockReporter creates a new instance of MockReporter
func NewMockReporter() *MockReporter {
	return &MockReporter{}
}

// WithDefaultBehavior accepts any Error call
func (m *MockReporter) WithDefaultBehavior() *MockReporter {
	m.On("Error", mock.Anything).Maybe().Return()
	return m
}

// Error mocks the Error method
func (m *MockReporter) Error(msg string) {
	m.Called(msg)
}
