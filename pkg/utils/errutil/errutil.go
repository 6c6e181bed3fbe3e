package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vellum-crm/vellum/pkg/utils/logging"
	"github.com/vellum-crm/vellum/pkg/utils/safe"
)

// Handle logs the error with a message and reports it to Sentry when a
// client is configured. The error is returned unchanged so call sites can
// keep their usual return flow.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.Default()

	// Extract goerr values for structured logging
	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	capture(err)

	return err
}

// capture reports the error to Sentry with goerr values as extras. No-op
// when no Sentry client is configured.
func capture(err error) {
	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}

	hub = hub.Clone()
	var ge *goerr.Error
	if errors.As(err, &ge) {
		hub.ConfigureScope(func(scope *sentry.Scope) {
			for k, v := range ge.Values() {
				scope.SetExtra(k, v)
			}
		})
	}
	hub.CaptureException(err)
}

// HandleHTTP logs the error and writes the JSON error envelope used by the
// REST API. Server-side errors are additionally reported to Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.Default()

	// Always log errors, especially 5xx errors
	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	if statusCode >= http.StatusInternalServerError {
		capture(err)
	}

	body, merr := json.Marshal(map[string]string{"message": err.Error()})
	if merr != nil {
		http.Error(w, err.Error(), statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, body)
}
