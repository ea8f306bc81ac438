package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

const (
	configFileName = "config.json"
	keyFileName    = ".keyfile"

	// ConfigDirEnvVar overrides the default ~/.shipsite directory.
	ConfigDirEnvVar = "SHIPSITE_CONFIG_DIR"
)

// Access key formats are fixed-length; regions follow the
// <geo>-<area>-<ordinal> shape, e.g. us-east-1.
const (
	accessKeyLen = 20
	secretKeyLen = 40
)

var regionPattern = regexp.MustCompile(`^[a-z]{2}-[a-z]+-\d$`)

// Credentials is the provider credential record. It is constructed once
// per command invocation and passed down explicitly; nothing in the tool
// keeps a process-wide session.
type Credentials struct {
	AccessKeyID     string `json:"aws_access_key_id"`
	SecretAccessKey string `json:"aws_secret_access_key"`
	Region          string `json:"region_name"`
}

// Validate checks the credential record against its format constraints.
func (c Credentials) Validate() error {
	if len(c.AccessKeyID) != accessKeyLen {
		return &CredentialError{Reason: "invalid access key ID format (must be 20 characters)"}
	}
	if len(c.SecretAccessKey) != secretKeyLen {
		return &CredentialError{Reason: "invalid secret access key format (must be 40 characters)"}
	}
	if !regionPattern.MatchString(c.Region) {
		return &CredentialError{Reason: fmt.Sprintf("invalid region format: %q", c.Region)}
	}
	return nil
}

// CredentialError reports missing or malformed credentials. It is always
// recoverable by re-running 'shipsite init'.
type CredentialError struct {
	Reason string
	Cause  error
}

func (e *CredentialError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("credentials: %s: %v", e.Reason, e.Cause)
	}
	return "credentials: " + e.Reason
}

func (e *CredentialError) Unwrap() error { return e.Cause }

// Remediation returns a hint printed alongside the error.
func (e *CredentialError) Remediation() string {
	return "run 'shipsite init' to configure credentials"
}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".shipsite"), nil
}

// Store persists the credential record under a configuration directory.
// Secret fields are encrypted at rest with a per-user key file.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save validates the credentials, encrypts the secret fields and writes
// config.json with owner-only permissions.
func (s *Store) Save(creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	key, err := s.encryptionKey()
	if err != nil {
		return err
	}

	onDisk := creds
	if onDisk.AccessKeyID, err = encrypt(key, creds.AccessKeyID); err != nil {
		return fmt.Errorf("failed to encrypt access key: %w", err)
	}
	if onDisk.SecretAccessKey, err = encrypt(key, creds.SecretAccessKey); err != nil {
		return fmt.Errorf("failed to encrypt secret key: %w", err)
	}

	data, err := json.MarshalIndent(onDisk, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(s.configPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", s.configPath(), err)
	}
	return nil
}

// Load reads config.json, decrypts the secret fields and validates the
// result. A missing file is a CredentialError, not an I/O error.
func (s *Store) Load() (Credentials, error) {
	raw, err := os.ReadFile(s.configPath())
	if os.IsNotExist(err) {
		return Credentials{}, &CredentialError{Reason: "no credentials configured"}
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read config file %s: %w", s.configPath(), err)
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, &CredentialError{Reason: "config file is corrupt", Cause: err}
	}

	key, err := s.encryptionKey()
	if err != nil {
		return Credentials{}, err
	}

	if creds.AccessKeyID, err = decrypt(key, creds.AccessKeyID); err != nil {
		return Credentials{}, &CredentialError{Reason: "failed to decrypt access key", Cause: err}
	}
	if creds.SecretAccessKey, err = decrypt(key, creds.SecretAccessKey); err != nil {
		return Credentials{}, &CredentialError{Reason: "failed to decrypt secret key", Cause: err}
	}

	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func (s *Store) configPath() string {
	return filepath.Join(s.dir, configFileName)
}

func (s *Store) keyPath() string {
	return filepath.Join(s.dir, keyFileName)
}
