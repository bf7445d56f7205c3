package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/contribwall/pkg/integrations"
)

// ReadFile retrieves a file from a repository through the contents API.
// The returned content is decoded from base64 and carries the blob SHA needed
// for a subsequent overwrite. A missing file returns (nil, nil), not an error.
func (c *Client) ReadFile(ctx context.Context, owner, repo, path string) (*FileContent, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, path)

	var resp apiContentResponse
	if _, err := c.api.GetJSON(ctx, url, &resp); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s from %s/%s: %w", path, owner, repo, err)
	}

	content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(resp.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("decode content of %s: %w", path, err)
	}

	return &FileContent{
		Path:    resp.Path,
		SHA:     resp.SHA,
		Content: content,
	}, nil
}

// writeFileRequest is the contents API PUT payload.
type writeFileRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// WriteFile creates or replaces a file through the contents API.
// For an overwrite, sha must be the blob SHA of the current file (from
// [Client.ReadFile]); leave it empty when creating. The write is a full
// replace committed with the given message.
func (c *Client) WriteFile(ctx context.Context, owner, repo, path string, content []byte, message, sha string) error {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, path)

	body, err := json.Marshal(writeFileRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     sha,
	})
	if err != nil {
		return err
	}

	_, err = c.api.Do(ctx, http.MethodPut, url, body, func(req *http.Request) {
		req.Header.Set("Content-Type", "application/json")
	})
	if err != nil {
		return fmt.Errorf("write %s to %s/%s: %w", path, owner, repo, err)
	}
	return nil
}
