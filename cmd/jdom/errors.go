// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/creachadair/jdom"
)

// errorType classifies command failures.
type errorType string

const (
	inputError  errorType = "input"
	parseError  errorType = "parse"
	pathError   errorType = "path"
	outputError errorType = "output"
	configError errorType = "config"
)

// appError is a command failure with a classification.
type appError struct {
	Type    errorType
	Message string
	Err     error
}

func (e *appError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *appError) Unwrap() error { return e.Err }

func newError(t errorType, msg string, err error) *appError {
	return &appError{Type: t, Message: msg, Err: err}
}

// exitCode reports the process exit status for err.
func exitCode(err error) int {
	var ae *appError
	if !errors.As(err, &ae) {
		return 1
	}
	switch ae.Type {
	case parseError, pathError:
		return 1
	default:
		return 2
	}
}

// userMessage renders err for the person running the command.
func userMessage(err error) string {
	var msg *jdom.Message
	if errors.As(err, &msg) {
		return msg.Error()
	}
	var ae *appError
	if errors.As(err, &ae) {
		switch ae.Type {
		case inputError:
			return fmt.Sprintf("cannot read input: %s: %v", ae.Message, ae.Err)
		case configError:
			return fmt.Sprintf("bad configuration: %v", ae.Err)
		}
	}
	return err.Error()
}
