// Package pagination exhaustively collects paginated GitHub listings.
//
// GitHub exposes pagination through an RFC 8288 Link response header naming
// the next and last page numbers rather than a simple cursor. [ParseLink]
// extracts that hint; [All] uses it to fetch every remaining page after the
// first with a bounded fan-out, concatenating items in page-number order
// regardless of fetch completion order.
package pagination

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/matzehuels/contribwall/pkg/errors"
)

// Hint names the remaining pages of a listing, parsed from the Link header.
// Zero values mean the listing has no further pages.
type Hint struct {
	Next int // next page number, 0 if none
	Last int // last page number, 0 if unknown
}

// HasMore reports whether the listing has pages beyond the current one.
func (h Hint) HasMore() bool { return h.Next > 0 }

var linkEntry = regexp.MustCompile(`<([^>]+)>\s*;\s*rel="([^"]+)"`)

// ParseLink extracts a pagination Hint from a Link header value such as
//
//	<https://api.github.com/repos/o/r/contributors?page=2>; rel="next",
//	<https://api.github.com/repos/o/r/contributors?page=9>; rel="last"
//
// Entries without a parseable page query parameter are ignored. An empty or
// malformed header yields the zero Hint.
func ParseLink(header string) Hint {
	var h Hint
	for _, part := range strings.Split(header, ",") {
		m := linkEntry.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		page := pageParam(m[1])
		if page == 0 {
			continue
		}
		switch m[2] {
		case "next":
			h.Next = page
		case "last":
			h.Last = page
		}
	}
	return h
}

func pageParam(raw string) int {
	u, err := url.Parse(raw)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// FetchFunc retrieves one page of a listing. Page numbers start at 1.
type FetchFunc[T any] func(ctx context.Context, page int) ([]T, Hint, error)

// All returns the order-preserving concatenation of every page of a listing.
//
// Page 1 is fetched first; if its hint names further pages, every page from
// the next through the last is fetched with at most concurrency requests in
// flight. Each page's items land in a slot owned by its page number, so
// completion order never affects output order.
//
// Any page failure aborts the collection with a PAGINATION_FAILED error and
// no partial result: the caller must retry the whole listing.
func All[T any](ctx context.Context, fetch FetchFunc[T], concurrency int) ([]T, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	first, hint, err := fetch(ctx, 1)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePagination, err, "fetch page 1")
	}
	if !hint.HasMore() {
		return first, nil
	}

	last := hint.Last
	if last < hint.Next {
		// Defensive: a next link without a last link still names one more page.
		last = hint.Next
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pages := make([][]T, last+1)
	errs := make([]error, last+1)
	pages[1] = first

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for page := hint.Next; page <= last; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[page] = ctx.Err()
				return
			}

			items, _, err := fetch(ctx, page)
			if err != nil {
				errs[page] = err
				cancel()
				return
			}
			pages[page] = items
		}(page)
	}
	wg.Wait()

	for page := hint.Next; page <= last; page++ {
		if errs[page] != nil {
			return nil, errors.Wrap(errors.ErrCodePagination, errs[page], "fetch page %d", page)
		}
	}

	var all []T
	for page := 1; page <= last; page++ {
		all = append(all, pages[page]...)
	}
	return all, nil
}
