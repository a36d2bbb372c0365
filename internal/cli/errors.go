// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/chatview/internal/config"
	"github.com/jeranaias/chatview/internal/transcript"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError is a failure of one step of the command.
type CommandError struct {
	Action string // Step being performed (e.g., "load config")
	Code   int    // Exit code
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func configError(err error) error {
	return &CommandError{Action: "load config", Code: ExitConfigError, Err: err}
}

func transcriptError(err error) error {
	code := ExitGeneralError
	switch {
	case errors.Is(err, os.ErrNotExist):
		code = ExitNotFoundError
	case errors.Is(err, transcript.ErrInvalid):
		code = ExitUsageError
	}
	return &CommandError{Action: "load transcript", Code: code, Err: err}
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	var verrs config.ValidateErrors
	if errors.As(err, &verrs) {
		return ExitConfigError
	}
	return ExitGeneralError
}

// DisplayError writes err in the standard format.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}
