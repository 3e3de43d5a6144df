package user

import "errors"

var (
	ErrInvalidFormat       = errors.New("unsupported file format")
	ErrParsing             = errors.New("failed to parse import file")
	ErrEmptyFile           = errors.New("the selected file contains no data")
	ErrStateNotFound       = errors.New("import state not found or expired")
	ErrImportBusy          = errors.New("a batch for this import is already running")
	ErrInvalidImportSource = errors.New("invalid import source")
	ErrInvalidAccountID    = errors.New("invalid account id")
	ErrAccountNotFound     = errors.New("account not found")
	ErrGetAccountByID      = errors.New("failed to get account by id")
)
