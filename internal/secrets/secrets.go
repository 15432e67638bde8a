// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads passwords for encrypted PDFs from a directory of
// plain-text files. Each file in the directory represents one secret: the
// filename is the key name and the file contents (trimmed) are the value.
//
// Supported key files: pdf-user-password, pdf-owner-password.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Key files understood by Passwords.
const (
	KeyUserPassword  = "pdf-user-password"
	KeyOwnerPassword = "pdf-owner-password"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string, log logrus.FieldLogger) (map[string]string, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.WithField("secret", name).WithError(err).Warn("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Passwords returns the user and owner passwords stored in dir. Either may
// be empty.
func Passwords(dir string, log logrus.FieldLogger) (user, owner string, err error) {
	s, err := Load(dir, log)
	if err != nil {
		return "", "", err
	}
	return s[KeyUserPassword], s[KeyOwnerPassword], nil
}
