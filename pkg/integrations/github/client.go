package github

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/contribwall/pkg/cache"
	"github.com/matzehuels/contribwall/pkg/integrations"
	"github.com/matzehuels/contribwall/pkg/pagination"
)

// perPage is the page size requested from listing endpoints.
// 100 is the maximum the API allows.
const perPage = 100

// Client provides access to the GitHub REST API endpoints contribwall uses:
// the contributor and collaborator listings, the authenticated user's repos,
// and the repository contents API.
type Client struct {
	api     *integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty token for unauthenticated requests (lower rate limits).
// The cache is used only for avatar-style byte payloads, never for listings.
func NewClient(token string, c cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Client{
		api:     integrations.NewClient(c, cacheTTL, headers),
		baseURL: "https://api.github.com",
	}
}

// SetBaseURL overrides the API base URL. Used for GitHub Enterprise and tests.
func (c *Client) SetBaseURL(url string) { c.baseURL = url }

// ListContributors fetches one page of the repository's contributor listing,
// including anonymous-excluded machine accounts, with the pagination hint
// from the Link header.
func (c *Client) ListContributors(ctx context.Context, owner, repo string, page int) ([]Contributor, pagination.Hint, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=%d&page=%d", c.baseURL, owner, repo, perPage, page)
	var items []Contributor
	hint, err := c.api.GetJSON(ctx, url, &items)
	if err != nil {
		return nil, pagination.Hint{}, fmt.Errorf("list contributors %s/%s: %w", owner, repo, err)
	}
	return items, hint, nil
}

// ListCollaborators fetches one page of the repository's collaborator listing
// filtered by affiliation. Requires push access on the repository.
func (c *Client) ListCollaborators(ctx context.Context, owner, repo string, affiliation Affiliation, page int) ([]Collaborator, pagination.Hint, error) {
	if !affiliation.Valid() {
		return nil, pagination.Hint{}, fmt.Errorf("invalid affiliation %q (must be all, direct, or outside)", affiliation)
	}
	url := fmt.Sprintf("%s/repos/%s/%s/collaborators?affiliation=%s&per_page=%d&page=%d",
		c.baseURL, owner, repo, affiliation, perPage, page)
	var items []Collaborator
	hint, err := c.api.GetJSON(ctx, url, &items)
	if err != nil {
		return nil, pagination.Hint{}, fmt.Errorf("list collaborators %s/%s: %w", owner, repo, err)
	}
	return items, hint, nil
}

// ListUserRepos retrieves all repositories of the authenticated user,
// most recently updated first. Used by the interactive repository picker.
func (c *Client) ListUserRepos(ctx context.Context) ([]Repo, error) {
	fetch := func(ctx context.Context, page int) ([]Repo, pagination.Hint, error) {
		url := fmt.Sprintf("%s/user/repos?sort=updated&per_page=%d&page=%d", c.baseURL, perPage, page)
		var repos []Repo
		hint, err := c.api.GetJSON(ctx, url, &repos)
		return repos, hint, err
	}
	return pagination.All(ctx, fetch, 4)
}

// FetchAvatar retrieves raw avatar bytes and their content type.
// Payloads are cached by URL.
func (c *Client) FetchAvatar(ctx context.Context, url string) ([]byte, string, error) {
	return c.api.GetBytes(ctx, url)
}
