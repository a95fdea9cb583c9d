// Copyright Sigma Labs Ltd., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the key name and the trimmed
// file contents are the value.
//
// Supported key files: aws-access-key-id, aws-secret-access-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	keyAccessKeyID     = "aws-access-key-id"
	keySecretAccessKey = "aws-secret-access-key"
)

// Secrets holds the loaded key/value pairs.
type Secrets map[string]string

// Load reads all files in dir into a Secrets map. A missing directory is
// not an error; Load returns an empty map so the core pipeline can run
// without any cloud credentials. Unreadable files produce a warning on
// stderr but do not abort.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Secrets)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[entry.Name()] = value
		}
	}

	return secrets, nil
}

// AWSCredentials returns the access key pair, erroring when either half is
// missing. Only the run subcommand needs these; process works without.
func (s Secrets) AWSCredentials() (accessKeyID, secretAccessKey string, err error) {
	accessKeyID = s[keyAccessKeyID]
	secretAccessKey = s[keySecretAccessKey]
	if accessKeyID == "" || secretAccessKey == "" {
		return "", "", fmt.Errorf("missing AWS credentials: provide %s and %s in the secrets directory",
			keyAccessKeyID, keySecretAccessKey)
	}
	return accessKeyID, secretAccessKey, nil
}
