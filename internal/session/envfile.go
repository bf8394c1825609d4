package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
)

const (
	envTokenKey   = "WALLET_TOKEN"
	envAddressKey = "WALLET_ADDRESS"
)

// EnvFileStore keeps the session in a dotenv file.
type EnvFileStore struct {
	mu   sync.Mutex
	path string
}

func NewEnvFileStore(path string) *EnvFileStore {
	return &EnvFileStore{path: path}
}

func (f *EnvFileStore) Path() string {
	return f.path
}

// Save writes a temp file next to the target and renames it into place,
// so a reader sees either the old pair or the new one.
func (f *EnvFileStore) Save(s Session) error {
	if !s.Valid() {
		return ErrPartialSession
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.env")
	if err != nil {
		return fmt.Errorf("error creating session file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	err = godotenv.Write(map[string]string{
		envTokenKey:   s.Token,
		envAddressKey: s.WalletAddress,
	}, tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error saving session: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error saving session: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

// Load reads the file without touching the process environment.
func (f *EnvFileStore) Load() (Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := godotenv.Read(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Session file unreadable", "path", f.path, "error", err)
		}
		return Session{}, false
	}

	s := Session{Token: values[envTokenKey], WalletAddress: values[envAddressKey]}
	if !s.Valid() {
		return Session{}, false
	}
	return s, true
}

func (f *EnvFileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}
