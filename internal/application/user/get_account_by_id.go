package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	domain "github.com/user-importer/internal/domain/user"
)

var accountIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

type GetAccountByIDInput struct {
	ID string
}

type GetAccountByIDOutput struct {
	ID          string `json:"id"`
	Login       string `json:"login"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type GetAccountByID interface {
	Execute(ctx context.Context, in GetAccountByIDInput) (GetAccountByIDOutput, error)
}

type getAccountByID struct {
	repo domain.AccountQueryRepository
}

func NewGetAccountByID(repo domain.AccountQueryRepository) GetAccountByID {
	return &getAccountByID{repo: repo}
}

func (uc *getAccountByID) Execute(ctx context.Context, in GetAccountByIDInput) (GetAccountByIDOutput, error) {
	if !accountIDPattern.MatchString(in.ID) {
		return GetAccountByIDOutput{}, ErrInvalidAccountID
	}

	account, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return GetAccountByIDOutput{}, ErrAccountNotFound
		}
		return GetAccountByIDOutput{}, fmt.Errorf("%w: %v", ErrGetAccountByID, err)
	}

	return GetAccountByIDOutput{
		ID:          account.ID,
		Login:       account.Login,
		Email:       account.Email,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		DisplayName: account.DisplayName,
		Role:        account.Role,
	}, nil
}
