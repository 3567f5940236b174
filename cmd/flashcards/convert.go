package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/interchange"
)

func newConvertCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert SHEET",
		Short: "Convert a spreadsheet into a topic file",
		Long: `Read cards from an .xlsx or .csv sheet and write them as a topic
interchange file named <subject>_<topic>.json.

Questions are read from column A, answers from B and the optional card type
from C. Rows with a missing side or an unknown type are skipped and reported.

Examples:
  flashcards convert vocab.xlsx --subject Spanish --topic Food
  flashcards convert cards.csv -s Math -t Algebra --start-row 1 -o out/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, e, args[0])
		},
	}

	defaults := interchange.DefaultSheetConfig()

	cmd.Flags().StringP("subject", "s", "", "Subject the topic belongs to (required)")
	cmd.Flags().StringP("topic", "t", "", "Topic name (required)")
	cmd.Flags().String("sheet", "", "Sheet name; empty reads the first sheet")
	cmd.Flags().Int("start-row", defaults.StartRow, "First data row, 1-based")
	cmd.Flags().String("question-col", defaults.QuestionColumn, "Question column letter")
	cmd.Flags().String("answer-col", defaults.AnswerColumn, "Answer column letter")
	cmd.Flags().String("type-col", defaults.TypeColumn, "Card type column letter; empty for none")
	cmd.Flags().StringP("output", "o", ".", "Output directory")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func runConvert(cmd *cobra.Command, e *env, path string) error {
	subject, _ := cmd.Flags().GetString("subject")
	topicName, _ := cmd.Flags().GetString("topic")
	out, _ := cmd.Flags().GetString("output")

	var sheet interchange.SheetConfig
	sheet.SheetName, _ = cmd.Flags().GetString("sheet")
	sheet.StartRow, _ = cmd.Flags().GetInt("start-row")
	sheet.QuestionColumn, _ = cmd.Flags().GetString("question-col")
	sheet.AnswerColumn, _ = cmd.Flags().GetString("answer-col")
	sheet.TypeColumn, _ = cmd.Flags().GetString("type-col")

	topic, result, err := interchange.ImportSheet(path, topicName, sheet)
	if err != nil {
		return err
	}

	for _, problem := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %s\n", problem)
	}

	codec := e.codec()

	var buf bytes.Buffer
	if err := codec.EncodeTopic(&buf, topic); err != nil {
		return fmt.Errorf("encoding topic: %w", err)
	}

	written, err := interchange.WriteFile(out, codec.TopicFile(subject, topicName), buf.Bytes())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d cards imported, %d skipped of %d rows\n",
		written, result.Imported, result.Skipped, result.TotalProcessed)

	return nil
}
