package interchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

// SheetConfig describes where cards live in a spreadsheet.
type SheetConfig struct {
	QuestionColumn string // Column letter holding the question
	AnswerColumn   string // Column letter holding the answer
	TypeColumn     string // Optional column letter holding the card type
	SheetName      string // Sheet to read; empty means the first sheet
	StartRow       int    // First data row (1-based)
}

// DefaultSheetConfig reads questions from A, answers from B and types from C,
// skipping a single header row.
func DefaultSheetConfig() SheetConfig {
	return SheetConfig{
		QuestionColumn: "A",
		AnswerColumn:   "B",
		TypeColumn:     "C",
		StartRow:       2,
	}
}

// SheetResult reports what happened to each row of a spreadsheet import.
type SheetResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

type columns struct {
	question, answer, cardType int
}

// ImportSheet reads a topic named topicName from an .xlsx or .csv file.
// Blank rows are skipped; rows with a missing side or an unknown type are
// skipped and reported in the result.
func ImportSheet(path, topicName string, cfg SheetConfig) (domain.Topic, *SheetResult, error) {
	if strings.TrimSpace(topicName) == "" {
		return domain.Topic{}, nil, domain.NewValidationError("topic", "topic is required")
	}

	cols, err := resolveColumns(cfg)
	if err != nil {
		return domain.Topic{}, nil, err
	}

	var rows [][]string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readExcel(path, cfg.SheetName)
	default:
		return domain.Topic{}, nil, domain.NewValidationErrorWithValue("file", "expected a .xlsx or .csv file", path)
	}

	if err != nil {
		return domain.Topic{}, nil, err
	}

	topic, result := rowsToTopic(rows, topicName, cols, cfg.StartRow)

	return topic, result, nil
}

func resolveColumns(cfg SheetConfig) (columns, error) {
	var (
		cols columns
		err  error
	)

	if cols.question, err = columnIndex(cfg.QuestionColumn); err != nil {
		return cols, domain.NewValidationErrorWithValue("question_column", err.Error(), cfg.QuestionColumn)
	}

	if cols.answer, err = columnIndex(cfg.AnswerColumn); err != nil {
		return cols, domain.NewValidationErrorWithValue("answer_column", err.Error(), cfg.AnswerColumn)
	}

	cols.cardType = -1
	if cfg.TypeColumn != "" {
		if cols.cardType, err = columnIndex(cfg.TypeColumn); err != nil {
			return cols, domain.NewValidationErrorWithValue("type_column", err.Error(), cfg.TypeColumn)
		}
	}

	return cols, nil
}

// columnIndex converts a column letter such as "A" or "AB" to a 0-based index.
func columnIndex(letters string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.ToUpper(strings.TrimSpace(letters)))
	if err != nil {
		return 0, fmt.Errorf("invalid column %q", letters)
	}

	return n - 1, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, domain.NewMalformedError("spreadsheet", "cannot open workbook", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, domain.NewMalformedError("spreadsheet", "workbook has no sheets", nil)
		}

		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, domain.NewMalformedError("spreadsheet", "cannot read sheet "+sheet, err)
	}

	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Rows may omit the type column
	reader.LazyQuotes = true

	var rows [][]string

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, domain.NewMalformedError("csv", "cannot parse rows", err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

func rowsToTopic(rows [][]string, name string, cols columns, startRow int) (domain.Topic, *SheetResult) {
	if startRow < 1 {
		startRow = 1
	}

	topic := domain.Topic{Name: name, Cards: []domain.Card{}}
	result := &SheetResult{Errors: make([]string, 0)}

	for i, row := range rows {
		rowNum := i + 1
		if rowNum < startRow {
			continue
		}

		question, answer := cell(row, cols.question), cell(row, cols.answer)
		rawType := cell(row, cols.cardType)

		if question == "" && answer == "" && rawType == "" {
			result.Skipped++

			continue
		}

		result.TotalProcessed++

		cardType, err := domain.ParseCardType(rawType)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: unknown card type %q", rowNum, rawType))

			continue
		}

		c, err := domain.NewCard(question, answer, cardType)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))

			continue
		}

		topic.Cards = append(topic.Cards, c)
		result.Imported++
	}

	return topic, result
}
