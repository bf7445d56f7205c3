// Package pkg provides the core libraries for Contribwall.
//
// # Overview
//
// Contribwall turns a GitHub repository's contributor and collaborator
// listings into an SVG avatar wall. The pkg directory is organized into
// three main areas:
//
//  1. Domain logic: [gallery] (classification and layout), [avatar]
//     (fetching and masking), [render] (SVG templating)
//  2. Infrastructure: [cache], [errors], [httputil], [pagination]
//  3. Orchestration: [pipeline] (collect → arrange → embed → render →
//     publish), with [integrations/github] and [publish] at the edges
//
// # Architecture
//
// The typical data flow through Contribwall:
//
//	GitHub listings (contributors, collaborators)
//	         ↓
//	    [gallery] package (classify, sort, position)
//	         ↓
//	    [avatar] package (fetch, mask, embed as data URIs)
//	         ↓
//	    [render] package (mustache templates → SVG)
//	         ↓
//	    [publish] package (fingerprint-gated write)
//
// # Quick Start
//
// Generate and publish a wall:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/contribwall/pkg/integrations/github"
//	    "github.com/matzehuels/contribwall/pkg/pipeline"
//	    "github.com/matzehuels/contribwall/pkg/publish"
//	)
//
//	client := github.NewClient(token, nil, 0)
//	store := publish.NewRepoStore(client, "octo", "widgets")
//	runner := pipeline.NewRunner(client, store, nil)
//
//	opts := pipeline.DefaultOptions()
//	opts.Repo = "octo/widgets"
//	result, _ := runner.Execute(context.Background(), opts)
//
// [gallery]: github.com/matzehuels/contribwall/pkg/gallery
// [avatar]: github.com/matzehuels/contribwall/pkg/avatar
// [render]: github.com/matzehuels/contribwall/pkg/render
// [cache]: github.com/matzehuels/contribwall/pkg/cache
// [errors]: github.com/matzehuels/contribwall/pkg/errors
// [httputil]: github.com/matzehuels/contribwall/pkg/httputil
// [pagination]: github.com/matzehuels/contribwall/pkg/pagination
// [pipeline]: github.com/matzehuels/contribwall/pkg/pipeline
// [integrations/github]: github.com/matzehuels/contribwall/pkg/integrations/github
// [publish]: github.com/matzehuels/contribwall/pkg/publish
package pkg
