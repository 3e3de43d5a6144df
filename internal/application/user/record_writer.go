package user

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/user-importer/internal/domain/user"
)

const defaultImportRole = "subscriber"

type accountCreator interface {
	Create(ctx context.Context, account domain.Account) (string, error)
}

// RecordWriter validates one normalized record and creates the account for
// it. Validation errors and duplicate conflicts surface as the domain
// sentinels; how they affect the rest of the import is the orchestrator's
// decision.
type RecordWriter struct {
	accounts    accountCreator
	defaultRole string
}

func NewRecordWriter(accounts accountCreator, defaultRole string) *RecordWriter {
	if defaultRole == "" {
		defaultRole = defaultImportRole
	}
	return &RecordWriter{accounts: accounts, defaultRole: defaultRole}
}

// Write returns the new account id on success. Duplicate logins and emails
// are rejected by the repository atomically with the insert.
func (w *RecordWriter) Write(ctx context.Context, rec domain.Record) (string, error) {
	password := rec[domain.FieldPassword]
	if strings.TrimSpace(password) == "" {
		generated, err := GeneratePassword(12)
		if err != nil {
			return "", err
		}
		password = generated
	}

	role := strings.TrimSpace(rec[domain.FieldRole])
	if role == "" {
		role = w.defaultRole
	}

	account, err := domain.NewAccount(
		rec[domain.FieldLogin],
		rec[domain.FieldEmail],
		password,
		rec[domain.FieldFirstName],
		rec[domain.FieldLastName],
		role,
	)
	if err != nil {
		return "", err
	}

	id, err := w.accounts.Create(ctx, account)
	if err != nil {
		return "", fmt.Errorf("create account %q: %w", account.Email, err)
	}
	return id, nil
}
