package fixture

import (
	"context"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CloneCorpus materializes a fixture corpus from a git source into dest
// and returns the loaded fixtures. rev may be a commit hash or empty for
// the default branch head.
func CloneCorpus(ctx context.Context, url, rev, dest string) ([]*Fixture, error) {
	repo, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{URL: url})
	if err != nil {
		return nil, fmt.Errorf("fixture: clone %s: %w", url, err)
	}
	if rev != "" {
		worktree, err := repo.Worktree()
		if err != nil {
			return nil, fmt.Errorf("fixture: worktree: %w", err)
		}
		if err := worktree.Checkout(&git.CheckoutOptions{Hash: plumbing.NewHash(rev)}); err != nil {
			return nil, fmt.Errorf("fixture: checkout %s: %w", rev, err)
		}
	}
	return LoadDir(dest)
}
