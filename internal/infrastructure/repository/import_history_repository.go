package repository

import (
	"context"
	"fmt"

	domain "github.com/user-importer/internal/domain/user"
	"github.com/user-importer/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// ImportHistoryRepository is the durable history-log sink: one row per
// import, updated in place as batches complete, never deleted.
type ImportHistoryRepository struct {
	db *gorm.DB
}

func NewImportHistoryRepository(db *gorm.DB) *ImportHistoryRepository {
	return &ImportHistoryRepository{db: db}
}

func (r *ImportHistoryRepository) Append(ctx context.Context, entry domain.ImportJob) error {
	row := models.ImportHistory{
		ID:        entry.ID,
		FileName:  entry.FileName,
		TotalRows: entry.TotalRows,
		Status:    string(domain.ImportStatusNew),
	}
	if entry.Status != "" {
		row.Status = string(entry.Status)
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create import history entry: %w", err)
	}
	return nil
}

func (r *ImportHistoryRepository) Update(ctx context.Context, importID string, status domain.ImportStatus, processed, skipped int, message string) error {
	updates := map[string]any{
		"status":         string(status),
		"processed_rows": processed,
		"skipped_rows":   skipped,
	}
	if message != "" {
		updates["error_message"] = message
	}

	result := r.db.WithContext(ctx).
		Model(&models.ImportHistory{}).
		Where("id = ?", importID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update import history entry: %w", result.Error)
	}
	return nil
}

func (r *ImportHistoryRepository) ListAll(ctx context.Context) ([]domain.ImportJob, error) {
	var rows []models.ImportHistory
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list import history: %w", err)
	}

	entries := make([]domain.ImportJob, 0, len(rows))
	for _, row := range rows {
		entry := domain.ImportJob{
			ID:            row.ID,
			FileName:      row.FileName,
			TotalRows:     row.TotalRows,
			ProcessedRows: row.ProcessedRows,
			SkippedRows:   row.SkippedRows,
			Status:        domain.ImportStatus(row.Status),
			CreatedAt:     row.CreatedAt,
		}
		if row.ErrorMessage != nil {
			entry.ErrorMessage = *row.ErrorMessage
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
