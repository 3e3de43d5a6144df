package user

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	domain "github.com/user-importer/internal/domain/user"
	"github.com/user-importer/internal/parser"
)

type InitializeImportInput struct {
	FileRef  string
	FileName string
	Format   string
}

type InitializeImportOutput struct {
	ImportID  string `json:"import_id"`
	TotalRows int    `json:"total_rows"`
}

type InitializeImport interface {
	Execute(ctx context.Context, in InitializeImportInput) (InitializeImportOutput, error)
}

type rowCounter interface {
	CountRows(path string, format parser.Format) (int, error)
}

type historyAppender interface {
	Append(ctx context.Context, entry domain.ImportJob) error
}

type stateWriter interface {
	Put(ctx context.Context, state domain.WorkingState, ttl time.Duration) error
}

type initializeImport struct {
	reader   rowCounter
	history  historyAppender
	states   stateWriter
	stateTTL time.Duration
}

func NewInitializeImport(reader rowCounter, history historyAppender, states stateWriter, stateTTL time.Duration) InitializeImport {
	if stateTTL <= 0 {
		stateTTL = 24 * time.Hour
	}
	return &initializeImport{
		reader:   reader,
		history:  history,
		states:   states,
		stateTTL: stateTTL,
	}
}

// Execute counts the importable rows, then creates the durable history entry
// and the expiring working state. Counting failures abort before any state
// exists.
func (uc *initializeImport) Execute(ctx context.Context, in InitializeImportInput) (InitializeImportOutput, error) {
	if in.FileRef == "" {
		return InitializeImportOutput{}, ErrInvalidImportSource
	}

	var format parser.Format
	var err error
	if in.Format != "" {
		format, err = parser.ParseFormat(in.Format)
	} else {
		format, err = parser.DetectFormat(in.FileRef)
	}
	if err != nil {
		return InitializeImportOutput{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	total, err := uc.reader.CountRows(in.FileRef, format)
	if err != nil {
		if errors.Is(err, parser.ErrUnsupportedFormat) {
			return InitializeImportOutput{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return InitializeImportOutput{}, fmt.Errorf("%w: %v", ErrParsing, err)
	}
	if total == 0 {
		return InitializeImportOutput{}, ErrEmptyFile
	}

	fileName := in.FileName
	if fileName == "" {
		fileName = filepath.Base(in.FileRef)
	}

	importID := uuid.NewString()

	if err := uc.history.Append(ctx, domain.ImportJob{
		ID:        importID,
		FileName:  fileName,
		TotalRows: total,
		Status:    domain.ImportStatusNew,
	}); err != nil {
		return InitializeImportOutput{}, fmt.Errorf("append import history: %w", err)
	}

	if err := uc.states.Put(ctx, domain.WorkingState{
		ImportID:  importID,
		FilePath:  in.FileRef,
		FileName:  fileName,
		Format:    string(format),
		TotalRows: total,
	}, uc.stateTTL); err != nil {
		return InitializeImportOutput{}, fmt.Errorf("store working state: %w", err)
	}

	return InitializeImportOutput{ImportID: importID, TotalRows: total}, nil
}
