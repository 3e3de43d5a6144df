package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/user-importer/internal/domain/user"
	"github.com/user-importer/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type AccountQueryRepository struct {
	db *gorm.DB
}

func NewAccountQueryRepository(db *gorm.DB) *AccountQueryRepository {
	return &AccountQueryRepository{db: db}
}

func (r *AccountQueryRepository) GetByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var row models.Account

	err := r.db.WithContext(ctx).First(&row, "id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}

	return &domain.Account{
		ID:          row.ID,
		Login:       row.Login,
		Email:       row.Email,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		DisplayName: row.DisplayName,
		Role:        row.Role,
	}, nil
}
