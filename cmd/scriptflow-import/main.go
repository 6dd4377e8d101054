// Package main provides the bulk-import CLI: it validates a JSON document of
// workflow nodes and loads it into the configured store in one batch.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/atechlabs/scriptflow/pkg/cmd"
	"github.com/atechlabs/scriptflow/pkg/log"
	"github.com/atechlabs/scriptflow/pkg/services"
	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"
)

func main() {
	_ = godotenv.Load()

	logger := log.WithModule("import")

	command := &cli.Command{
		Name:                  "scriptflow-import",
		Usage:                 "Import a workflow node document into the store",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the JSON document of workflow nodes",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "validate-only",
				Usage: "Validate the document against the schema and exit",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			path := command.String("file")

			document, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			if err := services.ValidateImportDocument(document); err != nil {
				return err
			}

			if command.Bool("validate-only") {
				logger.InfoContext(ctx, "Document is valid", "file", path)

				return nil
			}

			nodes, err := services.DecodeImportDocument(document)
			if err != nil {
				return err
			}

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			editor := services.NewEditor(persistence, logger)

			imported, err := editor.BulkImport(ctx, nodes)
			if err != nil {
				return err
			}

			logger.InfoContext(ctx, "Import complete", "file", path, "nodes", len(imported))

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		logger.Error("Import failed", "error", err)
		os.Exit(1)
	}
}
