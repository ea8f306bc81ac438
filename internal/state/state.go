package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ResourceType classifies a tracked piece of infrastructure.
type ResourceType string

// ResourceBucket is the only resource type provisioned today. The state
// format keeps room for more (the original tracked CDN distributions it
// never created).
const ResourceBucket ResourceType = "s3_bucket"

// Resource is one provisioned piece of infrastructure. Immutable once
// recorded; identity is (Type, Name).
type Resource struct {
	Type ResourceType `json:"type"`
	Name string       `json:"name"`
}

// State is the durable record of everything the tool has provisioned,
// in insertion order.
type State struct {
	Resources []Resource `json:"resources"`
}

// Buckets returns the names of all recorded bucket resources, in append
// order.
func (s *State) Buckets() []string {
	var names []string
	for _, r := range s.Resources {
		if r.Type == ResourceBucket {
			names = append(names, r.Name)
		}
	}
	return names
}

// PersistenceError reports a state file that could not be committed to
// disk. The infrastructure action that preceded the write is NOT undone:
// the resource already exists in the provider.
type PersistenceError struct {
	Path  string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("state: failed to persist %s: %v", e.Path, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }

// Remediation returns a hint printed alongside the error.
func (e *PersistenceError) Remediation() string {
	return "check disk space and permissions on " + filepath.Dir(e.Path)
}

// Manager handles reading and writing of the resource state file.
// The model is create-and-append, destroy-all-and-clear: there is no
// partial removal.
type Manager struct {
	path string
}

func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Load reads the state from the configured path. A missing file is an
// empty state, never an error.
func (m *Manager) Load() (*State, error) {
	raw, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", m.path, err)
	}

	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", m.path, err)
	}
	return &s, nil
}

// Record appends a resource and saves immediately.
func (m *Manager) Record(r Resource) error {
	s, err := m.Load()
	if err != nil {
		return err
	}
	s.Resources = append(s.Resources, r)
	return m.write(s)
}

// Clear deletes the persisted state entirely. Used only after a full
// rollback has been attempted for every recorded resource.
func (m *Manager) Clear() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return &PersistenceError{Path: m.path, Cause: err}
	}
	return nil
}

func (m *Manager) write(s *State) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return &PersistenceError{Path: m.path, Cause: err}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return &PersistenceError{Path: m.path, Cause: err}
	}

	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return &PersistenceError{Path: m.path, Cause: err}
	}
	return nil
}
