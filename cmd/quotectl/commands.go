package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rpggio/quotestudio/internal/config"
	"github.com/rpggio/quotestudio/internal/domain/quote"
	"github.com/rpggio/quotestudio/internal/domain/workspace"
	"github.com/rpggio/quotestudio/internal/export"
	"github.com/rpggio/quotestudio/internal/report"
	"github.com/rpggio/quotestudio/internal/sqlite"
	"github.com/rpggio/quotestudio/internal/storage"
)

// cliSaveDelay keeps read commands from writing a seeded workspace back
// before the process exits.
const cliSaveDelay = time.Hour

type app struct {
	out   io.Writer
	owner string

	db   *sqlite.DB
	svc  *workspace.Service
	keys *sqlite.APIKeyRepository
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "quotectl",
		Short:         "Inspect and export studio quotations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.owner, "owner", "default", "workspace owner id")

	root.AddCommand(
		a.summaryCmd(),
		a.projectsCmd(),
		a.exportCmd(),
		a.keysCmd(),
	)
	return root
}

func (a *app) open() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return err
	}
	store, err := storage.Open(cfg, db)
	if err != nil {
		db.Close()
		return err
	}

	a.db = db
	a.keys = sqlite.NewAPIKeyRepository(db)
	a.svc = workspace.NewService(store, nil, nil, workspace.Options{SaveDelay: cliSaveDelay})
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *app) summaryCmd() *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Render a project's quotation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.svc.Project(cmd.Context(), a.owner, projectID)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, report.Render(p, quote.Compute(p), quote.Allocation(p)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "project id (default: active project)")
	return cmd
}

func (a *app) projectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the project history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(a.out, report.Projects(a.svc.Projects(cmd.Context(), a.owner), time.Now()))
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var projectID, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a project's quotation as an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.svc.Project(cmd.Context(), a.owner, projectID)
			if err != nil {
				return err
			}
			data, err := export.Quotation(p, quote.Compute(p))
			if err != nil {
				return err
			}
			if output == "" {
				output = export.SheetName(p.Name) + ".xlsx"
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(a.out, "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "project id (default: active project)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <project name>.xlsx)")
	return cmd
}

func (a *app) keysCmd() *cobra.Command {
	keys := &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys for the HTTP server",
	}

	var description string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create an API key for --owner and print its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.owner == "" {
				return errors.New("--owner is required")
			}
			token := uuid.NewString()
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := a.keys.AddKey(ctx, token, a.owner, description); err != nil {
				return err
			}
			fmt.Fprintln(a.out, token)
			return nil
		},
	}
	add.Flags().StringVarP(&description, "description", "d", "", "note stored with the key")
	keys.AddCommand(add)
	return keys
}
