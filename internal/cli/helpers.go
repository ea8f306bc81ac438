package cli

import (
	"context"
	"path/filepath"

	"github.com/shipsite-io/shipsite/internal/config"
	"github.com/shipsite-io/shipsite/internal/provider"
	"github.com/shipsite-io/shipsite/internal/state"
	"github.com/shipsite-io/shipsite/providers/aws"
)

// session bundles everything a command needs to talk to the provider:
// the decrypted credentials, a connected object store and the state
// manager. Built fresh per invocation, never cached.
type session struct {
	Creds config.Credentials
	Store provider.ObjectStore
	State *state.Manager
}

func statePath(dir string) string {
	return filepath.Join(dir, "state.json")
}

// openSession loads stored credentials and connects the provider.
func openSession(ctx context.Context) (*session, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}

	creds, err := config.NewStore(dir).Load()
	if err != nil {
		return nil, err
	}

	store, err := aws.New(ctx, creds)
	if err != nil {
		return nil, err
	}

	return &session{
		Creds: creds,
		Store: store,
		State: state.NewManager(filepath.Join(dir, "state.json")),
	}, nil
}
