package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.PendingUser{},
		&models.Token{},
		&models.JobAdvert{},
		&models.JobApplication{},
		&models.Restaurant{},
	)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// setTestConfig installs an in-memory config so nothing reads config.yaml.
func setTestConfig(t *testing.T) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Email.BaseURL = "http://localhost:4000"
	cfg.Upload.MaxSize = 5 * 1024 * 1024

	config.AppConfig = cfg
}

// --- Fakes ---

type sentEmail struct {
	To       []string
	Subject  string
	Template string
	Data     email.TemplateData
}

// fakeEmailProvider records outgoing messages instead of sending them.
type fakeEmailProvider struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeEmailProvider) Send(e *email.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{To: e.To, Subject: e.Subject})
	return nil
}

func (f *fakeEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

func (f *fakeEmailProvider) Validate() error { return nil }
func (f *fakeEmailProvider) Close() error    { return nil }

func (f *fakeEmailProvider) sentEmails() []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentEmail, len(f.sent))
	copy(out, f.sent)
	return out
}

// waitForEmails blocks until the provider has recorded n messages.
// Services dispatch email in goroutines, so tests have to wait.
func waitForEmails(t *testing.T, provider *fakeEmailProvider, n int) []sentEmail {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sent := provider.sentEmails(); len(sent) >= n {
			return sent
		}
		time.Sleep(5 * time.Millisecond)
	}

	sent := provider.sentEmails()
	require.GreaterOrEqual(t, len(sent), n, "timed out waiting for emails")
	return sent
}

// fakeStorage keeps saved files in memory.
type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = data
	return nil
}

func (f *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]
	return ok, nil
}

func (f *fakeStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "/files/" + path, nil
}

func (f *fakeStorage) GetSize(ctx context.Context, path string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[path]
	if !ok {
		return 0, fmt.Errorf("file not found: %s", path)
	}
	return int64(len(data)), nil
}

func (f *fakeStorage) fileCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}
