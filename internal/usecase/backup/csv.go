package backup

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/samber/lo"
)

// CSVHeader is the first line of every CSV export.
const CSVHeader = "sourceText,targetText,phoneticHint"

var ErrNothingToExport = errors.New("no items to export")

// Column names recognised in a header row, compared after trimming and
// lower-casing.
var (
	textColumns = []string{
		"source", "sourcetext", "source text",
		"target", "targettext", "target text",
		"mandarin", "chinese", "english", "translation",
	}
	hintColumns = []string{"hint", "phonetichint", "phonetic hint", "phonetic", "pinyin", "reading"}
)

// CSVImportResult reports how many rows became items.
type CSVImportResult struct {
	Created []entity.Item
	Skipped int
}

// ExportCSV writes every stored item as a CSV row under CSVHeader and
// returns the number of rows written.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	items := s.items.List(ctx)
	if len(items) == 0 {
		return 0, ErrNothingToExport
	}
	_, err := io.WriteString(w, FormatCSV(items))
	if err != nil {
		return 0, fmt.Errorf("write csv: %w", err)
	}
	return len(items), nil
}

// FormatCSV renders items with a header row, one row per item, rows joined
// by "\n" with no trailing newline.
func FormatCSV(items []entity.Item) string {
	rows := make([]string, 0, len(items)+1)
	rows = append(rows, CSVHeader)
	for _, it := range items {
		rows = append(rows, strings.Join([]string{
			escapeCSVField(it.SourceText),
			escapeCSVField(it.TargetText),
			escapeCSVField(it.PhoneticHint),
		}, ","))
	}
	return strings.Join(rows, "\n")
}

func escapeCSVField(field string) string {
	if strings.ContainsAny(field, ",\"\n\r") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

// ImportCSV parses delimited text and creates items for every usable row
// in a single batch.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (CSVImportResult, error) {
	drafts, skipped, err := ParseCSV(r)
	if err != nil {
		return CSVImportResult{}, err
	}
	created := s.items.CreateBatch(ctx, drafts)
	return CSVImportResult{
		Created: created,
		Skipped: skipped + len(drafts) - len(created),
	}, nil
}

// ParseCSV reads source,target rows. A first row made only of known column
// names is treated as a header and skipped. Columns after the second are joined back into the target
// text, unless the header names the third column as a phonetic hint, in
// which case they are ignored. Rows with fewer than two non-empty fields
// are counted as skipped.
func ParseCSV(r io.Reader) ([]entity.ItemDraft, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		drafts   []entity.ItemDraft
		skipped  int
		hintCols bool
		first    = true
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("parse csv: %w", err)
		}
		if blankRow(row) {
			continue
		}
		if first {
			first = false
			if isHeaderRow(row) {
				hintCols = len(row) > 2 && isColumn(row[2], hintColumns)
				continue
			}
		}
		if len(row) < 2 {
			skipped++
			continue
		}

		source := strings.TrimSpace(row[0])
		target := strings.Join(row[1:], ",")
		if hintCols {
			target = row[1]
		}
		target = strings.TrimSpace(target)
		if source == "" || target == "" {
			skipped++
			continue
		}
		drafts = append(drafts, entity.ItemDraft{SourceText: source, TargetText: target})
	}
	return drafts, skipped, nil
}

func blankRow(row []string) bool {
	return lo.EveryBy(row, func(f string) bool { return strings.TrimSpace(f) == "" })
}

func isHeaderRow(row []string) bool {
	if len(row) < 2 || !isColumn(row[0], textColumns) || !isColumn(row[1], textColumns) {
		return false
	}
	names := append(append([]string{}, textColumns...), hintColumns...)
	return lo.EveryBy(row[2:], func(cell string) bool {
		return strings.TrimSpace(cell) == "" || isColumn(cell, names)
	})
}

func isColumn(cell string, names []string) bool {
	return lo.Contains(names, strings.ToLower(strings.TrimSpace(cell)))
}
