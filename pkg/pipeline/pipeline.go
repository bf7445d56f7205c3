// Package pipeline provides the end-to-end wall generation pipeline.
//
// This package implements the complete collect → arrange → embed → render →
// publish flow so the CLI and any other entry point share one behavior.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Collect: fetch contributor and collaborator listings (paginated)
//  2. Arrange: classify, order, and position every user on the canvas
//  3. Embed: fetch avatars concurrently and inline them as data URIs
//  4. Render: produce the SVG document from the arranged wall
//  5. Publish: write the document, gated on the fingerprint annotation
//
// The fingerprint gate runs between Arrange and Embed: when the published
// document already carries the fingerprint of the pending run, the expensive
// avatar and render stages are skipped entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(client, store, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Repo = "octo/widgets"
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Outcome)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/contribwall/pkg/avatar"
	"github.com/matzehuels/contribwall/pkg/errors"
	"github.com/matzehuels/contribwall/pkg/gallery"
	"github.com/matzehuels/contribwall/pkg/integrations/github"
	"github.com/matzehuels/contribwall/pkg/publish"
)

// Default values shared by every entry point.
const (
	// DefaultSVGWidth is the canvas width in pixels.
	DefaultSVGWidth = 740

	// DefaultAvatarSize is the tile edge length in pixels.
	DefaultAvatarSize = 64

	// DefaultAvatarMargin is the spacing around each tile in pixels.
	DefaultAvatarMargin = 5

	// DefaultNameHeight is the vertical room for the name label in pixels.
	DefaultNameHeight = 16

	// DefaultSVGPath is where the wall is published.
	DefaultSVGPath = "contributors.svg"

	// DefaultCommitMessage labels repository-store publishes.
	DefaultCommitMessage = "chore: update contributors"

	// DefaultConcurrency bounds parallel page and avatar fetches.
	DefaultConcurrency = 8
)

// Options contains all configuration for a wall generation run.
// Use [DefaultOptions] as the starting point; the zero value of the boolean
// fields is "off", not the documented default.
type Options struct {
	// Repo is the target repository as "owner/name". Required.
	Repo string `json:"repo"`

	// Collection options
	Sort                 bool               `json:"sort"`                  // order by contribution count, descending
	IncludeBots          bool               `json:"include_bots"`          // keep bots in the contributor section too
	IncludeCollaborators bool               `json:"include_collaborators"` // fetch and render the collaborator section
	Affiliation          github.Affiliation `json:"affiliation,omitempty"` // collaborator filter: all, direct, outside
	Truncate             int                `json:"truncate,omitempty"`    // display name length cap, 0 disables
	MaxPerSection        int                `json:"max_per_section,omitempty"`
	Excluded             []string           `json:"excluded,omitempty"` // logins dropped before layout

	// Layout options
	SVGWidth     int  `json:"svg_width,omitempty"`
	AvatarSize   int  `json:"avatar_size,omitempty"`
	AvatarMargin int  `json:"avatar_margin,omitempty"`
	NameHeight   int  `json:"name_height,omitempty"`
	Round        bool `json:"round"` // circular avatar masking

	// Render options
	SVGTemplate  string `json:"svg_template,omitempty"`  // empty means built-in
	ItemTemplate string `json:"item_template,omitempty"` // empty means built-in

	// Publish options
	SVGPath       string `json:"svg_path,omitempty"`
	CommitMessage string `json:"commit_message,omitempty"`
	Force         bool   `json:"force,omitempty"` // publish even when the fingerprint is unchanged

	// Runtime options (not serialized)
	AvatarFailure avatar.FailurePolicy `json:"-"`
	Concurrency   int                  `json:"-"`
	Logger        *log.Logger          `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// DefaultOptions returns the documented defaults for every knob except Repo.
func DefaultOptions() Options {
	return Options{
		Sort:                 true,
		IncludeBots:          true,
		IncludeCollaborators: true,
		Affiliation:          github.AffiliationAll,
		SVGWidth:             DefaultSVGWidth,
		AvatarSize:           DefaultAvatarSize,
		AvatarMargin:         DefaultAvatarMargin,
		NameHeight:           DefaultNameHeight,
		Round:                true,
		SVGPath:              DefaultSVGPath,
		CommitMessage:        DefaultCommitMessage,
		AvatarFailure:        avatar.FailPlaceholder,
		Concurrency:          DefaultConcurrency,
	}
}

// ValidateAndSetDefaults checks required fields and fills unset string and
// runtime ones. Geometry must be positive; construct via [DefaultOptions] to
// start from the standard dimensions.
// This method is idempotent: calling it twice has the effect of calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if _, _, err := github.ParseRepoRef(o.Repo); err != nil {
		return err
	}

	if o.Affiliation == "" {
		o.Affiliation = github.AffiliationAll
	}
	if !o.Affiliation.Valid() {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid affiliation %q (must be all, direct, or outside)", o.Affiliation)
	}
	if o.Truncate < 0 || o.MaxPerSection < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "truncate and max_per_section must be non-negative")
	}

	// Geometry defaults come from DefaultOptions, not from validation: every
	// dimension is part of the rendered output, so an explicit zero is a
	// configuration error rather than a request for the default.
	if o.SVGWidth <= 0 || o.AvatarSize <= 0 || o.AvatarMargin <= 0 || o.NameHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"svg_width, avatar_size, avatar_margin, and name_height must be positive")
	}
	if err := o.Layout().Validate(); err != nil {
		return err
	}

	if o.SVGPath == "" {
		o.SVGPath = DefaultSVGPath
	}
	if o.CommitMessage == "" {
		o.CommitMessage = DefaultCommitMessage
	}
	if o.AvatarFailure == "" {
		o.AvatarFailure = avatar.FailPlaceholder
	}
	if !o.AvatarFailure.Valid() {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid avatar failure policy %q (must be placeholder or fail)", o.AvatarFailure)
	}
	if o.Concurrency == 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Concurrency < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency must be positive, got %d", o.Concurrency)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Layout returns the canvas geometry derived from the options.
func (o *Options) Layout() gallery.LayoutConfig {
	return gallery.LayoutConfig{
		CanvasWidth:  o.SVGWidth,
		AvatarSize:   o.AvatarSize,
		AvatarMargin: o.AvatarMargin,
		NameHeight:   o.NameHeight,
		Round:        o.Round,
	}
}

// normalizeOptions translates the collection knobs for the gallery package.
func (o *Options) normalizeOptions() gallery.NormalizeOptions {
	excluded := make(map[string]struct{}, len(o.Excluded))
	for _, login := range o.Excluded {
		excluded[login] = struct{}{}
	}
	return gallery.NormalizeOptions{
		IncludeBots:   o.IncludeBots,
		Sort:          o.Sort,
		Truncate:      o.Truncate,
		MaxPerSection: o.MaxPerSection,
		Excluded:      excluded,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution in logs.
	RunID string

	// Outcome reports what happened to the destination.
	Outcome publish.Outcome

	// Fingerprint is the semantic summary embedded in the published document.
	Fingerprint gallery.Fingerprint

	// Heights holds the computed section heights in pixels.
	Heights gallery.Heights

	// Counts holds the per-section user counts.
	Counts Counts

	// Content is the full published document (annotation plus SVG). Empty
	// when the run short-circuited on an unchanged fingerprint.
	Content string

	// Stats contains timing information.
	Stats Stats
}

// Counts holds per-section user counts.
type Counts struct {
	Contributors  int
	Bots          int
	Collaborators int
}

// Total is the number of tiles on the wall.
func (c Counts) Total() int {
	return c.Contributors + c.Bots + c.Collaborators
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CollectTime time.Duration
	AvatarTime  time.Duration
	RenderTime  time.Duration
	PublishTime time.Duration
}
