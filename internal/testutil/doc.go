// Package testutil provides common test utilities for remove-labels components.
//
// Sub-packages:
//
//   - mocks: testify/mock implementations of the interfaces consumed by internal/step
//   - helpers: log capture helpers
package testutil
