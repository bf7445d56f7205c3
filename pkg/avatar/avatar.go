// Package avatar turns remote avatar URLs into embeddable data URIs.
//
// The pipeline fetches every avatar of a wall concurrently (bounded
// fan-out), optionally masks each to a circle, and writes the result back
// into the tile slot that was assigned before any fetch began. This is a
// scatter/gather over precomputed indexes, so completion order can never
// change the layout.
//
// A failed fetch is handled per the configured [FailurePolicy]: substitute a
// generated placeholder tile and log a warning (the default), or abort the
// whole run.
package avatar

import (
	"context"
	"encoding/base64"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/contribwall/pkg/errors"
	"github.com/matzehuels/contribwall/pkg/gallery"
)

// FailurePolicy decides what a single unavailable avatar does to the run.
type FailurePolicy string

// Failure policies.
const (
	// FailPlaceholder renders the affected user with a generated placeholder
	// tile and continues the run.
	FailPlaceholder FailurePolicy = "placeholder"

	// FailAbort fails the whole run on the first unavailable avatar.
	FailAbort FailurePolicy = "fail"
)

// Valid reports whether p is a recognized policy.
func (p FailurePolicy) Valid() bool {
	return p == FailPlaceholder || p == FailAbort
}

// Source retrieves raw avatar bytes and their content type by URL.
// *github.Client satisfies this.
type Source interface {
	FetchAvatar(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// Options configures a Pipeline.
type Options struct {
	Size        int           // tile edge length; round masks render at min(intrinsic, Size)
	Round       bool          // apply circular masking and re-encode as PNG
	Policy      FailurePolicy // what a failed fetch does to the run
	Concurrency int           // max in-flight fetches; <1 means 1
	Logger      *log.Logger   // warnings for degraded avatars; nil uses log.Default
}

// Pipeline embeds avatars for the users of a wall.
type Pipeline struct {
	src  Source
	opts Options
}

// New creates a Pipeline over the given source.
func New(src Source, opts Options) *Pipeline {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Policy == "" {
		opts.Policy = FailPlaceholder
	}
	return &Pipeline{src: src, opts: opts}
}

// EmbedAll replaces every user's Avatar URL with an embeddable data URI,
// fetching concurrently. Each task owns exactly one user slot; positions
// assigned by the layout engine are never touched.
//
// Under FailPlaceholder, fetch failures degrade to placeholder tiles and the
// run continues. Under FailAbort, the first failure cancels outstanding
// fetches and is returned as an AVATAR_FETCH_FAILED error.
func (p *Pipeline) EmbedAll(ctx context.Context, s *gallery.Sections) error {
	var users []*gallery.User
	for _, section := range [][]gallery.User{s.Contributors, s.Bots, s.Collaborators} {
		for i := range section {
			users = append(users, &section[i])
		}
	}
	if len(users) == 0 {
		return nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, len(users))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.opts.Concurrency)

	for i, u := range users {
		wg.Add(1)
		go func(i int, u *gallery.User) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}

			uri, err := p.embed(ctx, u.Avatar)
			if err == nil {
				u.Avatar = uri
				return
			}

			// A fetch killed by cancellation is not a degraded avatar;
			// substituting a placeholder for it would mask the abort.
			if p.opts.Policy == FailAbort || ctx.Err() != nil {
				errs[i] = err
				cancel()
				return
			}
			p.opts.Logger.Warn("avatar unavailable, using placeholder", "login", u.Login, "err", err)
			u.Avatar = p.placeholderURI()
		}(i, u)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil && err != context.Canceled {
			return errors.Wrap(errors.ErrCodeAvatarFetch, err, "avatar for %s", users[i].Login)
		}
	}
	// Cancellation mid-run leaves some users with raw remote URLs. The wall
	// must never be rendered from such a partial state, so the run fails even
	// though no individual fetch reported an error.
	if err := parent.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeAvatarFetch, err, "avatar embedding interrupted")
	}
	return nil
}

// embed fetches one avatar and converts it to a data URI.
// Without rounding the raw bytes pass through unmodified under the served
// content type; with rounding the image is re-encoded as masked PNG.
func (p *Pipeline) embed(ctx context.Context, url string) (string, error) {
	data, contentType, err := p.src.FetchAvatar(ctx, url)
	if err != nil {
		return "", err
	}
	if !p.opts.Round {
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		return dataURI(contentType, data), nil
	}

	masked, err := roundMask(data, p.opts.Size)
	if err != nil {
		return "", err
	}
	return dataURI("image/png", masked), nil
}

func (p *Pipeline) placeholderURI() string {
	return dataURI("image/png", placeholderPNG(p.opts.Size, p.opts.Round))
}

func dataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
