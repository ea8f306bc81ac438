package deploy

import (
	"context"

	"github.com/shipsite-io/shipsite/internal/logging"
	"github.com/shipsite-io/shipsite/internal/state"
)

// RollbackResult summarizes a rollback attempt.
type RollbackResult struct {
	Deleted []string
	Failed  map[string]error
}

// Empty reports a rollback that found nothing to destroy.
func (r *RollbackResult) Empty() bool {
	return len(r.Deleted) == 0 && len(r.Failed) == 0
}

// Rollback destroys every tracked resource, best-effort: a single
// deletion failure is reported but does not stop the remaining
// deletions, and the persisted state is cleared after all of them have
// been attempted. Empty state is nothing-to-do, not an error, and makes
// no provider calls.
func (p *Pipeline) Rollback(ctx context.Context) (*RollbackResult, error) {
	s, err := p.State.Load()
	if err != nil {
		return nil, err
	}

	result := &RollbackResult{}
	if len(s.Resources) == 0 {
		return result, nil
	}

	for _, r := range s.Resources {
		if r.Type != state.ResourceBucket {
			logging.Warn("skipping resource of unknown type", "type", string(r.Type), "name", r.Name)
			continue
		}
		if err := p.Store.DeleteBucket(ctx, r.Name); err != nil {
			logging.Error("failed to delete bucket", "bucket", r.Name, "error", err)
			if result.Failed == nil {
				result.Failed = make(map[string]error)
			}
			result.Failed[r.Name] = err
			continue
		}
		result.Deleted = append(result.Deleted, r.Name)
	}

	if err := p.State.Clear(); err != nil {
		return result, err
	}
	return result, nil
}
