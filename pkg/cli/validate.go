package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vellum-crm/vellum/pkg/cli/config"
	"github.com/vellum-crm/vellum/pkg/repository/firestore"
	"github.com/vellum-crm/vellum/pkg/usecase"
	"github.com/vellum-crm/vellum/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var appCfg config.AppConfig
	var firestoreProjectID string
	var firestoreDatabaseID string

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "firestore-project-id",
		Usage:       "Firestore Project ID (if specified, repository consistency check is performed)",
		Sources:     cli.EnvVars("VELLUM_FIRESTORE_PROJECT_ID"),
		Destination: &firestoreProjectID,
	})
	flags = append(flags, &cli.StringFlag{
		Name:        "firestore-database-id",
		Usage:       "Firestore Database ID",
		Sources:     cli.EnvVars("VELLUM_FIRESTORE_DATABASE_ID"),
		Destination: &firestoreDatabaseID,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate tenant catalog files and optionally check repository consistency",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate catalog files
			catalogs, registry, err := appCfg.Configure()
			if err != nil {
				color.New(color.FgRed).Printf("✗ catalog validation failed\n")
				return goerr.Wrap(err, "catalog validation failed")
			}

			green := color.New(color.FgGreen)
			green.Printf("✓ %d catalog file(s) valid\n", len(catalogs))
			for _, catalog := range catalogs {
				green.Printf("  %s (%s): %d field(s)\n",
					catalog.Tenant.ID, catalog.Tenant.Name, len(catalog.Fields))
			}

			// Step 2: If Firestore project ID is specified, check that stored
			// documents are consistent with the catalog descriptors
			if firestoreProjectID == "" {
				logger.Info("No Firestore project ID specified, skipping repository consistency check")
				return nil
			}

			repo, err := firestore.New(ctx, firestoreProjectID, firestoreDatabaseID)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Firestore repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			logger.Info("Using Firestore repository",
				"project_id", firestoreProjectID,
				"database_id", firestoreDatabaseID,
			)

			uc := usecase.New(repo, registry)
			validationResult, err := uc.ValidateDB(ctx)
			if err != nil {
				return goerr.Wrap(err, "repository consistency check failed")
			}

			if validationResult.HasIssues() {
				red := color.New(color.FgRed)
				for _, issue := range validationResult.Issues {
					red.Printf("✗ %s %s.%s (%s): %s (expected %q, got %q)\n",
						issue.Tenant, issue.Object, issue.Field, issue.Path,
						issue.Message, issue.Expected, issue.Actual)
				}

				return fmt.Errorf("repository consistency check found %d issue(s)", len(validationResult.Issues))
			}

			green.Printf("✓ repository consistency check passed\n")
			return nil
		},
	}
}
