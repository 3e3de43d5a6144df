package user

import "context"

type AccountQueryRepository interface {
	GetByID(ctx context.Context, accountID string) (*Account, error)
}
