package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	domain "github.com/user-importer/internal/domain/user"
	"github.com/user-importer/internal/parser"
)

const maxFailureReasonLen = 1000

type AdvanceImportInput struct {
	ImportID string
}

type AdvanceImportOutput struct {
	ProcessedRows int    `json:"processed_rows"`
	SkippedRows   int    `json:"skipped_rows"`
	TotalRows     int    `json:"total_rows"`
	Percentage    int    `json:"percentage"`
	Completed     bool   `json:"completed"`
	FileName      string `json:"file_name"`
}

type AdvanceImport interface {
	Execute(ctx context.Context, in AdvanceImportInput) (AdvanceImportOutput, error)
}

type batchReader interface {
	ReadBatch(path string, format parser.Format, cur parser.Cursor, limit int) ([]map[string]string, parser.Cursor, error)
}

type stateStore interface {
	Get(ctx context.Context, importID string) (*domain.WorkingState, error)
	Put(ctx context.Context, state domain.WorkingState, ttl time.Duration) error
	Delete(ctx context.Context, importID string) error
	Lock(ctx context.Context, importID string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, importID string) error
}

type historyUpdater interface {
	Update(ctx context.Context, importID string, status domain.ImportStatus, processed, skipped int, message string) error
}

type recordWriter interface {
	Write(ctx context.Context, rec domain.Record) (string, error)
}

type AdvanceImportConfig struct {
	// BatchSize is the number of rows consumed per call.
	BatchSize int
	// StateTTL refreshes the working-state expiry on every persisted batch.
	StateTTL time.Duration
	// LockTTL bounds how long a crashed call can hold the per-import lock.
	LockTTL time.Duration
	// SkipInvalidRows switches the row-error policy from halting the whole
	// import (the default) to counting the row as skipped and continuing.
	// Duplicate conflicts and validation errors follow the same policy;
	// repository failures always fail the import.
	SkipInvalidRows bool
}

type advanceImport struct {
	reader  batchReader
	states  stateStore
	history historyUpdater
	writer  recordWriter
	cfg     AdvanceImportConfig
}

func NewAdvanceImport(reader batchReader, states stateStore, history historyUpdater, writer recordWriter, cfg AdvanceImportConfig) AdvanceImport {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = 24 * time.Hour
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = time.Minute
	}
	return &advanceImport{
		reader:  reader,
		states:  states,
		history: history,
		writer:  writer,
		cfg:     cfg,
	}
}

// Execute advances the import by exactly one batch and reports progress.
// A missing or expired working state is terminal: the call returns
// ErrStateNotFound without touching the history entry, and the import can
// only be restarted from scratch.
func (uc *advanceImport) Execute(ctx context.Context, in AdvanceImportInput) (AdvanceImportOutput, error) {
	if strings.TrimSpace(in.ImportID) == "" {
		return AdvanceImportOutput{}, ErrStateNotFound
	}

	locked, err := uc.states.Lock(ctx, in.ImportID, uc.cfg.LockTTL)
	if err != nil {
		return AdvanceImportOutput{}, fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return AdvanceImportOutput{}, ErrImportBusy
	}
	defer func() {
		if err := uc.states.Unlock(ctx, in.ImportID); err != nil {
			log.Printf("release import lock %s failed: %v", in.ImportID, err)
		}
	}()

	state, err := uc.states.Get(ctx, in.ImportID)
	if err != nil {
		return AdvanceImportOutput{}, fmt.Errorf("load working state: %w", err)
	}
	if state == nil {
		return AdvanceImportOutput{}, ErrStateNotFound
	}

	format, err := parser.ParseFormat(state.Format)
	if err != nil {
		return AdvanceImportOutput{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	records, next, err := uc.reader.ReadBatch(state.FilePath, format, parser.Cursor{
		Row:  state.NextOffset,
		Byte: state.ByteOffset,
	}, uc.cfg.BatchSize)
	if err != nil {
		// The file vanished or turned unreadable mid-import; nothing left
		// to resume.
		return AdvanceImportOutput{}, uc.failImport(ctx, state, fmt.Errorf("%w: %v", ErrParsing, err))
	}

	consumed := 0
	skipped := 0
	for i, raw := range records {
		_, writeErr := uc.writer.Write(ctx, domain.Record(raw))
		if writeErr == nil {
			consumed++
			continue
		}

		if uc.cfg.SkipInvalidRows && isRowError(writeErr) {
			skipped++
			consumed++
			continue
		}

		rowErr := fmt.Errorf("row %d: %w", state.NextOffset+i+1, writeErr)
		state.ProcessedRows += consumed
		state.SkippedRows += skipped
		return AdvanceImportOutput{}, uc.failImport(ctx, state, rowErr)
	}

	state.ProcessedRows += consumed
	state.SkippedRows += skipped
	state.NextOffset += len(records)
	state.ByteOffset = next.Byte

	completed := state.ProcessedRows >= state.TotalRows || len(records) == 0
	if completed {
		if err := uc.states.Delete(ctx, state.ImportID); err != nil {
			return AdvanceImportOutput{}, fmt.Errorf("delete working state: %w", err)
		}
		if err := uc.history.Update(ctx, state.ImportID, domain.ImportStatusCompleted, state.ProcessedRows, state.SkippedRows, ""); err != nil {
			return AdvanceImportOutput{}, fmt.Errorf("update import history: %w", err)
		}
	} else {
		if err := uc.states.Put(ctx, *state, uc.cfg.StateTTL); err != nil {
			return AdvanceImportOutput{}, fmt.Errorf("store working state: %w", err)
		}
		if err := uc.history.Update(ctx, state.ImportID, domain.ImportStatusInProgress, state.ProcessedRows, state.SkippedRows, ""); err != nil {
			return AdvanceImportOutput{}, fmt.Errorf("update import history: %w", err)
		}
	}

	return AdvanceImportOutput{
		ProcessedRows: state.ProcessedRows,
		SkippedRows:   state.SkippedRows,
		TotalRows:     state.TotalRows,
		Percentage:    percentage(state.ProcessedRows, state.TotalRows),
		Completed:     completed,
		FileName:      state.FileName,
	}, nil
}

// failImport records the terminal failure in the history entry, destroys the
// working state so later advances become a safe no-op-with-error, and returns
// the cause.
func (uc *advanceImport) failImport(ctx context.Context, state *domain.WorkingState, cause error) error {
	reason := truncateReason(cause.Error())
	if err := uc.history.Update(ctx, state.ImportID, domain.ImportStatusFailed, state.ProcessedRows, state.SkippedRows, reason); err != nil {
		log.Printf("mark import %s failed: %v", state.ImportID, err)
	}
	if err := uc.states.Delete(ctx, state.ImportID); err != nil {
		log.Printf("delete working state %s: %v", state.ImportID, err)
	}
	return cause
}

// isRowError reports whether the failure is attributable to the row itself
// rather than to the account repository.
func isRowError(err error) bool {
	return errors.Is(err, domain.ErrMissingData) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrDuplicateEmail) ||
		errors.Is(err, domain.ErrDuplicateLogin)
}

func percentage(processed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(processed) / float64(total) * 100))
}

func truncateReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxFailureReasonLen {
		return reason
	}
	return reason[:maxFailureReasonLen]
}
