package user

import (
	"net/mail"
	"strings"
)

type Account struct {
	ID          string
	Login       string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	DisplayName string
	Role        string
}

// NewAccount validates the required fields and derives the display name.
// The password is taken verbatim; generating one for empty input is the
// caller's concern.
func NewAccount(login, email, password, firstName, lastName, role string) (Account, error) {
	login = strings.TrimSpace(login)
	email = strings.TrimSpace(email)

	if login == "" || email == "" {
		return Account{}, ErrMissingData
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return Account{}, ErrInvalidEmail
	}

	return Account{
		Login:       login,
		Email:       email,
		Password:    password,
		FirstName:   strings.TrimSpace(firstName),
		LastName:    strings.TrimSpace(lastName),
		DisplayName: strings.TrimSpace(firstName + " " + lastName),
		Role:        strings.TrimSpace(role),
	}, nil
}
