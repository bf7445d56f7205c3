package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/contribwall/pkg/avatar"
	"github.com/matzehuels/contribwall/pkg/errors"
	"github.com/matzehuels/contribwall/pkg/gallery"
	"github.com/matzehuels/contribwall/pkg/integrations/github"
	"github.com/matzehuels/contribwall/pkg/pagination"
	"github.com/matzehuels/contribwall/pkg/publish"
	"github.com/matzehuels/contribwall/pkg/render"
)

// Runner executes the wall generation pipeline against one source and one
// destination. It is stateless apart from its collaborators: multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Client *github.Client
	Store  publish.Store
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the package default is used.
func NewRunner(client *github.Client, store publish.Store, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Client: client,
		Store:  store,
		Logger: logger,
	}
}

// Execute runs the complete collect → arrange → embed → render → publish
// pipeline. An unchanged fingerprint short-circuits before any avatar is
// fetched unless opts.Force is set.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}

	result := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run", result.RunID, "repo", opts.Repo)

	owner, repo, err := github.ParseRepoRef(opts.Repo)
	if err != nil {
		return nil, err
	}

	// Stage 1: Collect
	collectStart := time.Now()
	sections, err := r.Collect(ctx, owner, repo, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.CollectTime = time.Since(collectStart)
	result.Counts.Contributors, result.Counts.Bots, result.Counts.Collaborators = sections.Counts()

	logger.Info("collected users",
		"contributors", result.Counts.Contributors,
		"bots", result.Counts.Bots,
		"collaborators", result.Counts.Collaborators,
		"duration", result.Stats.CollectTime)

	// Stage 2: Arrange
	result.Heights, err = gallery.ArrangeAll(&sections, opts.Layout())
	if err != nil {
		return nil, err
	}
	result.Fingerprint = gallery.NewFingerprint(sections)
	annotation := result.Fingerprint.Annotation()

	// Fingerprint gate: skip the expensive stages when the published
	// document already renders this exact user set.
	gate := publish.NewGate(r.Store)
	prior, err := gate.Check(ctx, opts.SVGPath, annotation)
	if err != nil {
		return nil, err
	}
	if prior.Unchanged && !opts.Force {
		result.Outcome = publish.OutcomeUnchanged
		logger.Info("fingerprint unchanged, skipping publish", "path", opts.SVGPath)
		return result, nil
	}
	if opts.Force {
		prior.Unchanged = false
	}

	// Stage 3: Embed avatars
	avatarStart := time.Now()
	embedder := avatar.New(r.Client, avatar.Options{
		Size:        opts.AvatarSize,
		Round:       opts.Round,
		Policy:      opts.AvatarFailure,
		Concurrency: opts.Concurrency,
		Logger:      logger,
	})
	if err := embedder.EmbedAll(ctx, &sections); err != nil {
		return nil, err
	}
	result.Stats.AvatarTime = time.Since(avatarStart)

	logger.Info("embedded avatars",
		"users", result.Counts.Total(),
		"duration", result.Stats.AvatarTime)

	// Stage 4: Render
	renderStart := time.Now()
	renderer, err := render.New(render.Options{
		SVGTemplate:  opts.SVGTemplate,
		ItemTemplate: opts.ItemTemplate,
	})
	if err != nil {
		return nil, err
	}
	svg, err := renderer.Render(&sections, result.Heights, opts.SVGWidth)
	if err != nil {
		return nil, err
	}
	result.Content = annotation + "\n" + svg
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered wall",
		"width", opts.SVGWidth,
		"height", result.Heights.Total,
		"duration", result.Stats.RenderTime)

	// Stage 5: Publish
	publishStart := time.Now()
	result.Outcome, err = gate.Publish(ctx, opts.SVGPath, result.Content, opts.CommitMessage, prior)
	if err != nil {
		return nil, err
	}
	result.Stats.PublishTime = time.Since(publishStart)

	logger.Info("published wall",
		"path", opts.SVGPath,
		"outcome", result.Outcome,
		"duration", result.Stats.PublishTime)

	return result, nil
}

// Collect fetches the complete contributor and collaborator listings and
// normalizes them into wall sections. All pages of each listing are fetched;
// pages after the first load concurrently.
func (r *Runner) Collect(ctx context.Context, owner, repo string, opts Options) (gallery.Sections, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return gallery.Sections{}, err
	}

	contributors, err := pagination.All(ctx, func(ctx context.Context, page int) ([]github.Contributor, pagination.Hint, error) {
		return r.Client.ListContributors(ctx, owner, repo, page)
	}, opts.Concurrency)
	if err != nil {
		return gallery.Sections{}, err
	}

	var collaborators []github.Collaborator
	if opts.IncludeCollaborators {
		collaborators, err = pagination.All(ctx, func(ctx context.Context, page int) ([]github.Collaborator, pagination.Hint, error) {
			return r.Client.ListCollaborators(ctx, owner, repo, opts.Affiliation, page)
		}, opts.Concurrency)
		if err != nil {
			return gallery.Sections{}, err
		}
	}

	return gallery.Normalize(rawContributors(contributors), rawCollaborators(collaborators), opts.normalizeOptions()), nil
}

func rawContributors(items []github.Contributor) []gallery.RawUser {
	raw := make([]gallery.RawUser, len(items))
	for i, c := range items {
		raw[i] = gallery.RawUser{
			Login:         c.Login,
			AvatarURL:     c.AvatarURL,
			ProfileURL:    c.HTMLURL,
			Bot:           c.Type == "Bot",
			Contributions: c.Contributions,
		}
	}
	return raw
}

func rawCollaborators(items []github.Collaborator) []gallery.RawUser {
	raw := make([]gallery.RawUser, len(items))
	for i, c := range items {
		raw[i] = gallery.RawUser{
			Login:      c.Login,
			AvatarURL:  c.AvatarURL,
			ProfileURL: c.HTMLURL,
		}
	}
	return raw
}
