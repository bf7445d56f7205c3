// Package github provides a client for the subset of the GitHub REST API
// that contribwall uses.
//
// # Capabilities
//
// The client covers three concerns:
//
//   - Listings: contributors and collaborators for a repository, plus the
//     authenticated user's repositories. Listing endpoints paginate through
//     the Link response header; pages are collected exhaustively by
//     pkg/pagination.
//   - Contents: reading and writing a single repository file, with
//     content-addressed overwrite via the prior blob SHA.
//   - Avatars: fetching raw avatar bytes with response caching.
//
// # Authentication
//
// Pass a personal access token or Actions-provided GITHUB_TOKEN to
// [NewClient]. Collaborator listings and contents writes require push access;
// contributor listings work unauthenticated at reduced rate limits.
//
// Types mirror only the response fields actually consumed, following the
// API version 2022-11-28.
package github
