package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// SetPepper installs the secret appended to every password before hashing.
// Changing it invalidates every stored hash.
func SetPepper(value string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = value
}

func currentPepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

// LoadPepperFile reads the pepper from path, generating and persisting a new
// one when the file does not exist yet. The loaded value is installed with
// SetPepper.
func LoadPepperFile(path string) error {
	if path == "" {
		return errors.New("cryptox: pepper path is empty")
	}
	path = filepath.Clean(path)

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		v := strings.TrimSpace(string(b))
		if v == "" {
			return fmt.Errorf("cryptox: pepper file %s is empty", path)
		}
		SetPepper(v)
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("cryptox: read pepper: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("cryptox: create pepper dir: %w", err)
	}

	raw := make([]byte, keyLength)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("cryptox: generate pepper: %w", err)
	}
	v := base64.RawURLEncoding.EncodeToString(raw)

	if err := os.WriteFile(path, []byte(v), 0o600); err != nil {
		return fmt.Errorf("cryptox: write pepper: %w", err)
	}
	SetPepper(v)
	return nil
}
