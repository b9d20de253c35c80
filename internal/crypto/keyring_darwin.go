//go:build darwin

package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

type darwinKeyring struct{}

func newPlatformKeyring() Keyring {
	return &darwinKeyring{}
}

// GetKey retrieves the encryption key from the macOS Keychain, falling back to
// LABOURCOST_DB_KEY so scripted runs work without Keychain access
func (k *darwinKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if env := os.Getenv(EnvKey); env != "" {
			return env, nil
		}
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("encryption key not found in keychain: %w", err)
		}
		return "", fmt.Errorf("failed to retrieve key from keychain: %w", err)
	}

	if key == "" {
		return "", errors.New("encryption key is empty")
	}

	return key, nil
}

// SetKey stores the encryption key in the macOS Keychain
func (k *darwinKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keychain: %w", err)
	}

	return nil
}

// DeleteKey removes the encryption key from the macOS Keychain
func (k *darwinKeyring) DeleteKey() error {
	err := keyring.Delete(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("encryption key not found in keychain: %w", err)
		}
		return fmt.Errorf("failed to delete key from keychain: %w", err)
	}

	return nil
}

// IsAvailable checks the Keychain with a throwaway entry
func (k *darwinKeyring) IsAvailable() bool {
	testKey := "__labourcost_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, testKey)
	return true
}
