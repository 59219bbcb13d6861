// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "fmt"

// ExitError carries a specific process exit code through the error
// path; main honors it via the ExitCode method instead of the generic
// failure code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the process exit code to use.
func (e *ExitError) ExitCode() int {
	return e.Code
}
