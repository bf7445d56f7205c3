// Package publish writes the rendered wall to its destination and gates the
// write on the embedded fingerprint annotation.
//
// Two stores are provided: a local filesystem store and a GitHub repository
// store that commits through the contents API. The gate reads the currently
// published document first; when it already carries the fingerprint of the
// pending run, the publish is a no-op, which keeps repeated runs over an
// unchanged wall from producing empty-diff commits.
package publish

import (
	"context"

	"github.com/matzehuels/contribwall/pkg/errors"
	"github.com/matzehuels/contribwall/pkg/gallery"
)

// Outcome classifies what a publish run did to the destination.
type Outcome string

// Publish outcomes.
const (
	OutcomeCreated   Outcome = "created"   // destination did not exist before
	OutcomeUpdated   Outcome = "updated"   // destination replaced with new content
	OutcomeUnchanged Outcome = "unchanged" // fingerprint matched, nothing written
)

// Store abstracts where the published document lives.
type Store interface {
	// Read returns the current document at path, or found=false when the
	// destination has no document yet.
	Read(ctx context.Context, path string) (content string, found bool, err error)

	// Write replaces the document at path. message labels the change where
	// the backing store records one (a commit message); stores without
	// change history ignore it.
	Write(ctx context.Context, path, content, message string) error
}

// Prior is a snapshot of the destination taken by [Gate.Check]. It feeds the
// later [Gate.Publish] so the document is read exactly once per run.
type Prior struct {
	Exists    bool
	Unchanged bool
}

// Gate performs fingerprint-gated publishing against a store.
type Gate struct {
	store Store
}

// NewGate creates a Gate over the given store.
func NewGate(store Store) *Gate {
	return &Gate{store: store}
}

// Check reads the published document and reports whether it already carries
// annotation inside one of its comment blocks. Run it before any expensive
// work: an unchanged destination means the rest of the run can be skipped.
func (g *Gate) Check(ctx context.Context, path, annotation string) (Prior, error) {
	content, found, err := g.store.Read(ctx, path)
	if err != nil {
		return Prior{}, errors.Wrap(errors.ErrCodePublish, err, "read %s", path)
	}
	if !found {
		return Prior{}, nil
	}
	return Prior{
		Exists:    true,
		Unchanged: gallery.ContainsAnnotation(content, annotation),
	}, nil
}

// Publish writes content to path unless prior says the destination already
// matches. The returned outcome distinguishes a first write from a replace.
func (g *Gate) Publish(ctx context.Context, path, content, message string, prior Prior) (Outcome, error) {
	if prior.Unchanged {
		return OutcomeUnchanged, nil
	}
	if err := g.store.Write(ctx, path, content, message); err != nil {
		return "", errors.Wrap(errors.ErrCodePublish, err, "write %s", path)
	}
	if prior.Exists {
		return OutcomeUpdated, nil
	}
	return OutcomeCreated, nil
}
