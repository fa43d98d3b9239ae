package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/umakantv/go-utils/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})
	os.Exit(m.Run())
}

// createTestStore opens a fresh sqlite store under the test's temp dir
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forum.db")
	s, err := Open(context.Background(), DriverSQLite, path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
