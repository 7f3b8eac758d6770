// Package mocks provides testify/mock implementations shared across packages.
//
// # Example
//
//	checker := mocks.NewMockSubscriptionChecker()
//	checker.On("Check", mock.Anything).Return(nil)
//
//	remover := mocks.NewMockRemover()
//	remover.On("RemoveLabels", mock.Anything, mock.Anything).Return(nil)
package mocks
