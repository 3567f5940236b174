package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

func newImportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import BASE INCOMING",
		Short: "Import a file into a collection file",
		Long: `Apply INCOMING to the collection in BASE and rewrite BASE.

--level collection replaces BASE outright. --level subject appends the
subject, or merges its topics into an existing subject of the same name.
--level topic adds the topic under --subject, replacing the cards of an
existing topic of the same name. Merges and replacements ask first unless
--yes is given. A declined import leaves BASE untouched.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, e, args[0], args[1])
		},
	}

	cmd.Flags().String("level", string(app.LevelCollection), "Document level: collection, subject or topic")
	cmd.Flags().StringP("subject", "s", "", "Parent subject of a topic import")
	cmd.Flags().BoolP("yes", "y", false, "Answer yes to every confirmation")

	return cmd
}

func runImport(cmd *cobra.Command, e *env, basePath, incomingPath string) error {
	ctx := cmd.Context()
	levelFlag, _ := cmd.Flags().GetString("level")
	subject, _ := cmd.Flags().GetString("subject")
	yes, _ := cmd.Flags().GetBool("yes")

	level, err := app.ParseLevel(levelFlag)
	if err != nil {
		return err
	}

	if level == app.LevelTopic && subject == "" {
		return domain.NewValidationError("subject", "--level topic requires --subject")
	}

	s, err := openSession(ctx, e, basePath)
	if err != nil {
		return err
	}

	incoming, err := os.Open(incomingPath)
	if err != nil {
		return fmt.Errorf("opening import: %w", err)
	}
	defer incoming.Close()

	confirmer := ports.AlwaysConfirm(true)
	if !yes {
		confirmer = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	var res app.ImportResult

	switch level {
	case app.LevelSubject:
		res, err = s.transfer.ImportSubject(ctx, incoming, confirmer)
	case app.LevelTopic:
		res, err = s.transfer.ImportTopic(ctx, subject, incoming, confirmer)
	default:
		res, err = s.transfer.ImportCollection(ctx, incoming)
	}

	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s import %s\n", res.Level, res.Outcome)

	if res.Outcome == app.OutcomeDeclined {
		return nil
	}

	artifact, err := s.transfer.ExportCollection(ctx)
	if err != nil {
		return err
	}

	artifact.Filename = filepath.Base(basePath)
	if err := writeArtifacts(cmd.OutOrStdout(), filepath.Dir(basePath), artifact); err != nil {
		return err
	}

	printStats(cmd.OutOrStdout(), res.Stats)

	return nil
}
