// package testing contains shared testing utilities
package testing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertthunder/mixtape/internal/shared"
)

// MemoryStorage is an in-memory test double for library.Storage
type MemoryStorage struct {
	Values map[string][]byte
	Writes int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Values: map[string][]byte{}}
}

func (m *MemoryStorage) Get(key string) ([]byte, error) {
	v, ok := m.Values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrKeyNotFound, key)
	}
	return v, nil
}

func (m *MemoryStorage) Set(key string, value []byte) error {
	m.Values[key] = append([]byte(nil), value...)
	m.Writes++
	return nil
}

// FailingStorage always fails on Set and reports every key as missing on Get
type FailingStorage struct{}

func (FailingStorage) Get(key string) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", shared.ErrKeyNotFound, key)
}

func (FailingStorage) Set(key string, value []byte) error {
	return fmt.Errorf("%w: quota exceeded", shared.ErrStorage)
}

// FakeOutput is a test double for player.Output that records calls instead of producing sound.
//
// Like the speaker, a finished source stays silent until it is rewound with Seek.
type FakeOutput struct {
	Source   string
	Playing  bool
	Pos      time.Duration
	Dur      time.Duration
	Level    float64
	Finished bool
	LoadErr  error
	Loads    []string
	Closed   bool
}

func (f *FakeOutput) Load(path string) error {
	if f.LoadErr != nil {
		return f.LoadErr
	}
	f.Source = path
	f.Loads = append(f.Loads, path)
	f.Playing = true
	f.Pos = 0
	f.Finished = false
	return nil
}

func (f *FakeOutput) Pause() { f.Playing = false }

func (f *FakeOutput) Play() {
	if f.Finished {
		return
	}
	f.Playing = true
}

func (f *FakeOutput) Seek(d time.Duration) error {
	f.Pos = d
	if f.Dur == 0 || d < f.Dur {
		f.Finished = false
	}
	return nil
}

func (f *FakeOutput) Position() time.Duration { return f.Pos }
func (f *FakeOutput) Duration() time.Duration { return f.Dur }
func (f *FakeOutput) SetVolume(level float64) { f.Level = level }
func (f *FakeOutput) Ended() bool             { return f.Finished }

func (f *FakeOutput) Close() error {
	f.Closed = true
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MustWriteFile writes a file with placeholder content under dir and returns its path.
func MustWriteFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("not really audio"), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
