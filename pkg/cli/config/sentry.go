package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/vellum-crm/vellum/pkg/utils/logging"
)

// Sentry holds CLI flags for error reporting configuration
type Sentry struct {
	dsn         string
	environment string
}

// Flags returns CLI flags for Sentry configuration
func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (disabled when empty)",
			Sources:     cli.EnvVars("VELLUM_SENTRY_DSN"),
			Destination: &s.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment tag",
			Sources:     cli.EnvVars("VELLUM_SENTRY_ENV"),
			Destination: &s.environment,
		},
	}
}

// IsConfigured reports whether a DSN was provided
func (s *Sentry) IsConfigured() bool {
	return s.dsn != ""
}

// Configure initializes the Sentry client when a DSN is set and returns a
// closer that flushes buffered events. Without a DSN it is a no-op and
// error capture stays disabled.
func (s *Sentry) Configure(version string) (func(), error) {
	if !s.IsConfigured() {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.dsn,
		Environment: s.environment,
		Release:     version,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry", goerr.V("environment", s.environment))
	}

	logging.Default().Info("Sentry error reporting enabled", "environment", s.environment)
	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}
