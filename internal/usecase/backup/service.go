package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/eslsoft/phraser/internal/usecase"
	"github.com/samber/lo"
)

const formatVersion = 1

// Record kinds written to a backup stream.
const (
	KindItems    = "items"
	KindSettings = "settings"
)

const (
	recordMeta     = "meta"
	recordItem     = "item"
	recordSettings = "settings"
)

var allKinds = []string{KindItems, KindSettings}

type ProgressReporter interface {
	StartTable(kind string, total int)
	Increment(kind string, delta int)
	FinishTable(kind string)
}

type noopProgress struct{}

func (noopProgress) StartTable(string, int) {}
func (noopProgress) Increment(string, int)  {}
func (noopProgress) FinishTable(string)     {}

// Service moves the item collection and settings in and out of the app as
// newline-delimited JSON or CSV.
type Service struct {
	items    usecase.ItemUsecase
	settings usecase.SettingsUsecase
	clock    func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for export timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService constructs a backup service bound to the item and settings usecases.
func NewService(items usecase.ItemUsecase, settings usecase.SettingsUsecase, opts ...Option) *Service {
	s := &Service{
		items:    items,
		settings: settings,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	kinds    []string
	reporter ProgressReporter
}

// WithKinds restricts export to the provided record kinds.
func WithKinds(kinds []string) ExportOption {
	return func(cfg *exportConfig) {
		if len(kinds) == 0 {
			return
		}
		cfg.kinds = append([]string{}, kinds...)
	}
}

// WithProgressReporter registers a reporter that receives progress callbacks during export.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(cfg *exportConfig) {
		cfg.reporter = reporter
	}
}

type ImportOption func(*importConfig)

type importConfig struct {
	kinds []string
}

// WithImportKinds restricts restore to the provided record kinds.
func WithImportKinds(kinds []string) ImportOption {
	return func(cfg *importConfig) {
		if len(kinds) == 0 {
			return
		}
		cfg.kinds = append([]string{}, kinds...)
	}
}

// ImportStats summarises a restore.
type ImportStats struct {
	Items           int
	DroppedItems    int
	SettingsApplied bool
}

type record struct {
	Type       string         `json:"type"`
	Version    int            `json:"version,omitempty"`
	ExportedAt *time.Time     `json:"exported_at,omitempty"`
	Kinds      []string       `json:"kinds,omitempty"`
	RowCounts  map[string]int `json:"row_counts,omitempty"`
	Payload    any            `json:"payload,omitempty"`
}

type rawRecord struct {
	Type       string          `json:"type"`
	Version    int             `json:"version"`
	ExportedAt *time.Time      `json:"exported_at"`
	Kinds      []string        `json:"kinds"`
	RowCounts  map[string]int  `json:"row_counts"`
	Payload    json.RawMessage `json:"payload"`
}

// Export writes a meta record followed by one record per item and a
// settings record.
func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) error {
	cfg := exportConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	kinds, err := selectKinds(cfg.kinds)
	if err != nil {
		return err
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}

	var items []entity.Item
	counts := make(map[string]int, len(kinds))
	if lo.Contains(kinds, KindItems) {
		items = s.items.List(ctx)
		counts[KindItems] = len(items)
	}
	if lo.Contains(kinds, KindSettings) {
		counts[KindSettings] = 1
	}

	writer := bufio.NewWriter(w)
	defer writer.Flush()

	now := s.clock().UTC()
	meta := record{
		Type:       recordMeta,
		Version:    formatVersion,
		ExportedAt: &now,
		Kinds:      kinds,
		RowCounts:  counts,
	}
	if err := writeRecord(writer, meta); err != nil {
		return err
	}

	if lo.Contains(kinds, KindItems) {
		reporter.StartTable(KindItems, len(items))
		for _, it := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeRecord(writer, record{Type: recordItem, Payload: it}); err != nil {
				return err
			}
			reporter.Increment(KindItems, 1)
		}
		reporter.FinishTable(KindItems)
	}
	if lo.Contains(kinds, KindSettings) {
		reporter.StartTable(KindSettings, 1)
		if err := writeRecord(writer, record{Type: recordSettings, Payload: s.settings.Load(ctx)}); err != nil {
			return err
		}
		reporter.Increment(KindSettings, 1)
		reporter.FinishTable(KindSettings)
	}
	return writer.Flush()
}

// Import restores a backup written by Export. The whole stream is decoded
// and checked before anything is replaced; malformed input fails with
// entity.ErrCorruptBackup and leaves stored data untouched.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) (ImportStats, error) {
	cfg := importConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	kinds, err := selectKinds(cfg.kinds)
	if err != nil {
		return ImportStats{}, err
	}

	br := bufio.NewReader(r)
	var (
		metaSeen bool
		meta     rawRecord
		items    []entity.Item
		settings *entity.Settings
		lineNo   int
	)

	for {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return ImportStats{}, fmt.Errorf("read backup: %w", err)
		}
		lineNo++
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			var rec rawRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return ImportStats{}, fmt.Errorf("%w: line %d: %v", entity.ErrCorruptBackup, lineNo, err)
			}

			switch rec.Type {
			case recordMeta:
				metaSeen = true
				meta = rec
			case recordItem:
				if len(rec.Payload) == 0 {
					return ImportStats{}, fmt.Errorf("%w: line %d: missing item payload", entity.ErrCorruptBackup, lineNo)
				}
				var it entity.Item
				if err := json.Unmarshal(rec.Payload, &it); err != nil {
					return ImportStats{}, fmt.Errorf("%w: line %d: %v", entity.ErrCorruptBackup, lineNo, err)
				}
				items = append(items, it)
			case recordSettings:
				if len(rec.Payload) == 0 {
					return ImportStats{}, fmt.Errorf("%w: line %d: missing settings payload", entity.ErrCorruptBackup, lineNo)
				}
				st := entity.DefaultSettings()
				if err := json.Unmarshal(rec.Payload, &st); err != nil {
					return ImportStats{}, fmt.Errorf("%w: line %d: %v", entity.ErrCorruptBackup, lineNo, err)
				}
				settings = &st
			default:
				// Unknown record types from newer writers are skipped.
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}

	if !metaSeen {
		return ImportStats{}, fmt.Errorf("%w: missing meta record", entity.ErrCorruptBackup)
	}
	if meta.Version != formatVersion {
		return ImportStats{}, fmt.Errorf("%w: unsupported format version %d", entity.ErrCorruptBackup, meta.Version)
	}
	if err := ctx.Err(); err != nil {
		return ImportStats{}, err
	}

	var stats ImportStats
	if lo.Contains(kinds, KindItems) && lo.Contains(meta.Kinds, KindItems) {
		kept := s.items.Replace(ctx, items)
		stats.Items = len(kept)
		stats.DroppedItems = len(items) - len(kept)
	}
	if lo.Contains(kinds, KindSettings) && settings != nil {
		s.settings.Save(ctx, *settings)
		stats.SettingsApplied = true
	}
	return stats, nil
}

func selectKinds(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return append([]string{}, allKinds...), nil
	}
	if unknown := lo.Without(requested, allKinds...); len(unknown) > 0 {
		return nil, fmt.Errorf("backup: unknown record kinds %v", unknown)
	}
	return lo.Filter(allKinds, func(k string, _ int) bool { return lo.Contains(requested, k) }), nil
}

func writeRecord(w io.Writer, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}
	return nil
}
