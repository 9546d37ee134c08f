package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"templatesvc/internal/model"
	"templatesvc/internal/repository"
)

func newSeedCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create templates from a JSON file of {name, content} objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()

			_, gormDB, err := a.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeDB(gormDB) }()

			created, skipped, err := seedTemplates(cmd.Context(), repository.NewTemplateRepository(gormDB), f)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"created": created, "skipped": skipped}).Info("seed complete")
			fmt.Fprintf(cmd.OutOrStdout(), "created %d templates, skipped %d\n", created, skipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file holding an array of templates")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// seedTemplates creates every valid entry in r. Entries missing the name or
// content key are skipped rather than aborting the run; empty strings are kept.
func seedTemplates(ctx context.Context, repo repository.TemplateRepository, r io.Reader) (created, skipped int, err error) {
	var entries []model.TemplateInput
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, 0, fmt.Errorf("parse seed file: %w", err)
	}

	validate := validator.New()
	for i, entry := range entries {
		if err := validate.Struct(entry); err != nil {
			log.WithField("index", i).Warnf("skipping invalid template: %v", err)
			skipped++
			continue
		}
		if _, err := repo.Create(ctx, entry.NewTemplate()); err != nil {
			return created, skipped, fmt.Errorf("create template %d: %w", i, err)
		}
		created++
	}
	return created, skipped, nil
}
