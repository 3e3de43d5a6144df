package user

import (
	"context"
	"fmt"
	"time"

	domain "github.com/user-importer/internal/domain/user"
)

type HistoryEntryOutput struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"`
	TotalRows     int       `json:"total_rows"`
	ProcessedRows int       `json:"processed_rows"`
	SkippedRows   int       `json:"skipped_rows"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type GetImportHistory interface {
	Execute(ctx context.Context) ([]HistoryEntryOutput, error)
}

type historyLister interface {
	ListAll(ctx context.Context) ([]domain.ImportJob, error)
}

type getImportHistory struct {
	history historyLister
}

func NewGetImportHistory(history historyLister) GetImportHistory {
	return &getImportHistory{history: history}
}

func (uc *getImportHistory) Execute(ctx context.Context) ([]HistoryEntryOutput, error) {
	entries, err := uc.history.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list import history: %w", err)
	}

	out := make([]HistoryEntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, HistoryEntryOutput{
			ID:            entry.ID,
			FileName:      entry.FileName,
			TotalRows:     entry.TotalRows,
			ProcessedRows: entry.ProcessedRows,
			SkippedRows:   entry.SkippedRows,
			Status:        string(entry.Status),
			ErrorMessage:  entry.ErrorMessage,
			CreatedAt:     entry.CreatedAt,
		})
	}
	return out, nil
}
