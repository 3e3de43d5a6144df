package user

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/user-importer/internal/parser"
)

type ReceiveUploadInput struct {
	FileName string
	Content  io.Reader
}

type ReceiveUploadOutput struct {
	FileRef  string `json:"file_ref"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
	Format   string `json:"format"`
}

type ReceiveUpload interface {
	Execute(ctx context.Context, in ReceiveUploadInput) (ReceiveUploadOutput, error)
}

type uploadStore interface {
	Save(ctx context.Context, fileName string, src io.Reader) (path string, size int64, err error)
}

type receiveUpload struct {
	store uploadStore
}

func NewReceiveUpload(store uploadStore) ReceiveUpload {
	return &receiveUpload{store: store}
}

// Execute stores the raw upload and returns the stable file reference the
// initialize call expects. Only csv and xml files are accepted.
func (uc *receiveUpload) Execute(ctx context.Context, in ReceiveUploadInput) (ReceiveUploadOutput, error) {
	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" || in.Content == nil {
		return ReceiveUploadOutput{}, ErrInvalidImportSource
	}

	format, err := parser.DetectFormat(fileName)
	if err != nil {
		return ReceiveUploadOutput{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	path, size, err := uc.store.Save(ctx, fileName, in.Content)
	if err != nil {
		return ReceiveUploadOutput{}, fmt.Errorf("store upload: %w", err)
	}

	return ReceiveUploadOutput{
		FileRef:  path,
		FileName: fileName,
		Size:     size,
		Format:   string(format),
	}, nil
}
