package user_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	app "github.com/user-importer/internal/application/user"
	domain "github.com/user-importer/internal/domain/user"
	"github.com/user-importer/internal/parser"
)

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []domain.ImportJob
	updates []historyUpdate
}

type historyUpdate struct {
	importID  string
	status    domain.ImportStatus
	processed int
	skipped   int
	message   string
}

func (f *fakeHistoryRepo) Append(ctx context.Context, entry domain.ImportJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistoryRepo) Update(ctx context.Context, importID string, status domain.ImportStatus, processed, skipped int, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, historyUpdate{importID, status, processed, skipped, message})
	return nil
}

func (f *fakeHistoryRepo) lastUpdate(t *testing.T) historyUpdate {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.updates) == 0 {
		t.Fatal("expected history updates")
	}
	return f.updates[len(f.updates)-1]
}

type fakeStateStore struct {
	mu     sync.Mutex
	states map[string]domain.WorkingState
	locks  map[string]bool
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{
		states: make(map[string]domain.WorkingState),
		locks:  make(map[string]bool),
	}
}

func (f *fakeStateStore) Put(ctx context.Context, state domain.WorkingState, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[state.ImportID] = state
	return nil
}

func (f *fakeStateStore) Get(ctx context.Context, importID string) (*domain.WorkingState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state, ok := f.states[importID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (f *fakeStateStore) Delete(ctx context.Context, importID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.states, importID)
	return nil
}

func (f *fakeStateStore) Lock(ctx context.Context, importID string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locks[importID] {
		return false, nil
	}
	f.locks[importID] = true
	return true, nil
}

func (f *fakeStateStore) Unlock(ctx context.Context, importID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.locks, importID)
	return nil
}

func writeImportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write import file: %v", err)
	}
	return path
}

const threeRowCSV = "user_login,user_email,user_pass,first_name,last_name,role\n" +
	"alice,alice@example.com,pw1,Alice,Smith,editor\n" +
	"bob,bob@example.com,,Bob,Jones,\n" +
	"carol,carol@example.com,pw3,Carol,Brown,author\n"

func TestInitializeImportSuccess(t *testing.T) {
	t.Parallel()

	history := &fakeHistoryRepo{}
	states := newFakeStateStore()
	uc := app.NewInitializeImport(parser.Extractor{}, history, states, time.Hour)

	out, err := uc.Execute(context.Background(), app.InitializeImportInput{
		FileRef:  writeImportFile(t, "users.csv", threeRowCSV),
		FileName: "users.csv",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.TotalRows != 3 {
		t.Fatalf("expected total 3, got %d", out.TotalRows)
	}
	if out.ImportID == "" {
		t.Fatal("expected import id")
	}

	if len(history.entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history.entries))
	}
	entry := history.entries[0]
	if entry.Status != domain.ImportStatusNew || entry.TotalRows != 3 {
		t.Fatalf("unexpected history entry: %+v", entry)
	}

	state, err := states.Get(context.Background(), out.ImportID)
	if err != nil || state == nil {
		t.Fatalf("expected working state, got %v (%v)", state, err)
	}
	if state.NextOffset != 0 || state.TotalRows != 3 {
		t.Fatalf("unexpected working state: %+v", state)
	}
}

func TestInitializeImportEmptyFile(t *testing.T) {
	t.Parallel()

	history := &fakeHistoryRepo{}
	uc := app.NewInitializeImport(parser.Extractor{}, history, newFakeStateStore(), time.Hour)

	_, err := uc.Execute(context.Background(), app.InitializeImportInput{
		FileRef: writeImportFile(t, "users.csv", "user_login,user_email\n"),
	})
	if !errors.Is(err, app.ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
	if len(history.entries) != 0 {
		t.Fatal("expected no history entry for empty file")
	}
}

func TestInitializeImportUnsupportedFormat(t *testing.T) {
	t.Parallel()

	uc := app.NewInitializeImport(parser.Extractor{}, &fakeHistoryRepo{}, newFakeStateStore(), time.Hour)

	_, err := uc.Execute(context.Background(), app.InitializeImportInput{
		FileRef: writeImportFile(t, "users.json", "[]"),
	})
	if !errors.Is(err, app.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestInitializeImportMalformedFile(t *testing.T) {
	t.Parallel()

	history := &fakeHistoryRepo{}
	uc := app.NewInitializeImport(parser.Extractor{}, history, newFakeStateStore(), time.Hour)

	_, err := uc.Execute(context.Background(), app.InitializeImportInput{
		FileRef: writeImportFile(t, "users.xml", "<users><user></users>"),
	})
	if !errors.Is(err, app.ErrParsing) {
		t.Fatalf("expected ErrParsing, got %v", err)
	}
	if len(history.entries) != 0 {
		t.Fatal("expected no state created before parsing succeeds")
	}
}

func TestInitializeImportXMLFile(t *testing.T) {
	t.Parallel()

	uc := app.NewInitializeImport(parser.Extractor{}, &fakeHistoryRepo{}, newFakeStateStore(), time.Hour)

	out, err := uc.Execute(context.Background(), app.InitializeImportInput{
		FileRef: writeImportFile(t, "users.xml",
			"<users><user><user_login>a</user_login><user_email>a@example.com</user_email></user>"+
				"<user><user_login>b</user_login><user_email>b@example.com</user_email></user></users>"),
		Format: "xml",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.TotalRows != 2 {
		t.Fatalf("expected total 2, got %d", out.TotalRows)
	}
}
