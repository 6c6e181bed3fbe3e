package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vellum-crm/vellum/pkg/cli/config"
)

func TestRepository_Configure(t *testing.T) {
	t.Run("memory backend needs no project", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("memory", "", "")
		repo, err := cfg.Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.Value(t, repo).NotNil()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore backend requires a project ID", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("firestore", "", "")
		_, err := cfg.Configure(t.Context())
		gt.Value(t, err).NotNil()
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("etched-stone", "", "")
		_, err := cfg.Configure(t.Context())
		gt.Value(t, err).NotNil()
	})

	t.Run("returns flags", func(t *testing.T) {
		var cfg config.Repository
		flags := cfg.Flags()
		gt.Value(t, len(flags)).Equal(3)
	})
}
