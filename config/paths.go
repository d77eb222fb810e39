package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// UserPath resolves sub against the user's home directory.
func UserPath(sub string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, sub), nil
}
