// Package errors provides the classified error primitives used across apisite.
//
// Errors carry a category (config, model, not_found, ...), a severity and a
// retry hint, plus structured context. A fluent builder keeps construction
// uniform:
//
//	err := errors.ModelError("failed to decode package descriptor").
//		WithContext("file", path).
//		WithCause(decodeErr).
//		Build()
//
// The CLI and HTTP adapters turn a classified error into an exit code or a
// JSON error response.
package errors
