package publish

import (
	"context"
	"sync"

	"github.com/matzehuels/contribwall/pkg/integrations/github"
)

// RepoStore publishes into a GitHub repository through the contents API.
// Each Read remembers the blob SHA of the file it saw so the following Write
// replaces exactly that revision; GitHub rejects the commit if the file moved
// underneath us in between.
type RepoStore struct {
	client *github.Client
	owner  string
	repo   string

	mu   sync.Mutex
	shas map[string]string
}

// NewRepoStore creates a store committing to owner/repo.
func NewRepoStore(client *github.Client, owner, repo string) *RepoStore {
	return &RepoStore{
		client: client,
		owner:  owner,
		repo:   repo,
		shas:   make(map[string]string),
	}
}

func (s *RepoStore) Read(ctx context.Context, path string) (string, bool, error) {
	file, err := s.client.ReadFile(ctx, s.owner, s.repo, path)
	if err != nil {
		return "", false, err
	}
	if file == nil {
		return "", false, nil
	}
	s.mu.Lock()
	s.shas[path] = file.SHA
	s.mu.Unlock()
	return string(file.Content), true, nil
}

func (s *RepoStore) Write(ctx context.Context, path, content, message string) error {
	s.mu.Lock()
	sha := s.shas[path]
	s.mu.Unlock()
	return s.client.WriteFile(ctx, s.owner, s.repo, path, []byte(content), message, sha)
}
