package user

import "time"

type ImportStatus string

const (
	ImportStatusNew        ImportStatus = "new"
	ImportStatusInProgress ImportStatus = "in_progress"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// ImportJob is the durable audit record of one import. It survives the
// expiry of the import's working state and is never deleted.
type ImportJob struct {
	ID            string
	FileName      string
	TotalRows     int
	ProcessedRows int
	SkippedRows   int
	Status        ImportStatus
	ErrorMessage  string
	CreatedAt     time.Time
}

// WorkingState is the ephemeral, expiring progress record for one import.
// It duplicates the file reference and row counts from the job so a single
// lookup is enough to resume.
//
// NextOffset is the index of the next unread data row and always equals
// ProcessedRows: rows skipped under the skip policy still count as processed
// so the import never loops on a bad row.
type WorkingState struct {
	ImportID      string `json:"import_id"`
	FilePath      string `json:"file_path"`
	FileName      string `json:"file_name"`
	Format        string `json:"format"`
	TotalRows     int    `json:"total_rows"`
	ProcessedRows int    `json:"processed_rows"`
	SkippedRows   int    `json:"skipped_rows"`
	NextOffset    int    `json:"next_offset"`
	ByteOffset    int64  `json:"byte_offset"`
}
