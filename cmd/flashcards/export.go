package main

import (
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

func newExportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Extract a collection, subject or topic file",
		Long: `Write part of a collection file as its own interchange document.

With no flags the whole collection is rewritten as flashcards.json. --subject
writes <subject>.json, --subject with --topic writes <subject>_<topic>.json,
and --split writes every subject to its own file.

Examples:
  flashcards export library.json --subject Math
  flashcards export library.json --subject Math --topic Algebra -o out/
  flashcards export library.json --split -o subjects/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, e, args[0])
		},
	}

	cmd.Flags().StringP("subject", "s", "", "Subject to export")
	cmd.Flags().StringP("topic", "t", "", "Topic to export; requires --subject")
	cmd.Flags().Bool("split", false, "Write one file per subject")
	cmd.Flags().StringP("output", "o", ".", "Output directory")
	cmd.MarkFlagsMutuallyExclusive("split", "subject")
	cmd.MarkFlagsMutuallyExclusive("split", "topic")

	return cmd
}

func runExport(cmd *cobra.Command, e *env, path string) error {
	ctx := cmd.Context()
	subject, _ := cmd.Flags().GetString("subject")
	topic, _ := cmd.Flags().GetString("topic")
	split, _ := cmd.Flags().GetBool("split")
	out, _ := cmd.Flags().GetString("output")

	if topic != "" && subject == "" {
		return domain.NewValidationError("subject", "--topic requires --subject")
	}

	s, err := openSession(ctx, e, path)
	if err != nil {
		return err
	}

	var artifacts []app.Artifact

	switch {
	case split:
		artifacts, err = s.transfer.ExportSubjects(ctx)
	case topic != "":
		var a app.Artifact
		a, err = s.transfer.ExportTopic(ctx, subject, topic)
		artifacts = []app.Artifact{a}
	case subject != "":
		var a app.Artifact
		a, err = s.transfer.ExportSubject(ctx, subject)
		artifacts = []app.Artifact{a}
	default:
		var a app.Artifact
		a, err = s.transfer.ExportCollection(ctx)
		artifacts = []app.Artifact{a}
	}

	if err != nil {
		return err
	}

	return writeArtifacts(cmd.OutOrStdout(), out, artifacts...)
}
