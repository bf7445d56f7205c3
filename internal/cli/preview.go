package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/contribwall/pkg/gallery"
	"github.com/matzehuels/contribwall/pkg/integrations/github"
	"github.com/matzehuels/contribwall/pkg/pipeline"
	"github.com/matzehuels/contribwall/pkg/publish"
)

// previewCommand creates the preview command: a publish-free dry run.
func (c *CLI) previewCommand() *cobra.Command {
	flags := &generateFlags{}
	var local bool

	cmd := &cobra.Command{
		Use:   "preview [owner/repo]",
		Short: "Show what a generate run would publish, without publishing",
		Long: `Collect and arrange the wall, then report whether the published
document is up to date. Nothing is written and no avatars are fetched.

Examples:
  contribwall preview octo/widgets
  contribwall preview octo/widgets --local      # check a local file instead`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, args, flags, local)
		},
	}

	flags.registerFlags(cmd)
	cmd.Flags().BoolVar(&local, "local", false, "check the wall file on disk instead of in the repository")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, args []string, flags *generateFlags, local bool) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
	defer cancel()

	opts, err := flags.resolve(cmd, args)
	if err != nil {
		return err
	}
	if opts.Repo == "" {
		return fmt.Errorf("repository is required (pass owner/repo or set it in %s)", configFileName)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	owner, repo, err := github.ParseRepoRef(opts.Repo)
	if err != nil {
		return err
	}

	client := c.newGitHubClient(ctx, githubToken(flags.token), flags.noCache, flags.cacheURL)
	runner := pipeline.NewRunner(client, nil, c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Collecting users of %s...", opts.Repo))
	spinner.Start()

	sections, err := runner.Collect(ctx, owner, repo, opts)
	if err != nil {
		spinner.StopWithError("Collection failed")
		return err
	}
	heights, err := gallery.ArrangeAll(&sections, opts.Layout())
	if err != nil {
		spinner.Stop()
		return err
	}
	annotation := gallery.NewFingerprint(sections).Annotation()

	var store publish.Store
	if local {
		store = publish.NewFileStore()
	} else {
		store = publish.NewRepoStore(client, owner, repo)
	}
	prior, err := publish.NewGate(store).Check(ctx, opts.SVGPath, annotation)
	if err != nil {
		spinner.StopWithError("Destination check failed")
		return err
	}
	spinner.Stop()

	contributors, bots, collaborators := sections.Counts()
	printKeyValue("Repository", opts.Repo)
	printKeyValue("Destination", opts.SVGPath)
	printKeyValue("Canvas", fmt.Sprintf("%dx%d px", opts.SVGWidth, heights.Total))
	printSectionCounts(contributors, bots, collaborators)
	printNewline()

	switch {
	case prior.Unchanged:
		printInfo("Up to date, generate would publish nothing")
	case prior.Exists:
		printWarning("Out of date, generate would update %s", opts.SVGPath)
	default:
		printWarning("Missing, generate would create %s", opts.SVGPath)
	}
	return nil
}
