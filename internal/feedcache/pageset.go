// Package feedcache holds the client side of the feed: the pages a view
// has fetched so far, an explicit registry of those page sets, and the
// pure patch transforms that keep them consistent after a confirmed
// mutation without a refetch.
package feedcache

import (
	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

// PageSet is the cached pages of one feed query, owned by exactly one
// view. Pages are append-only and keep their fetch order, the pending
// cursor resumes where the last page ended.
type PageSet struct {
	pages      [][]domain.Post
	nextCursor string
	hasMore    bool
	started    bool
}

// Append records one fetched page. An empty NextCursor marks the end of
// the stream.
func (ps *PageSet) Append(page domain.FeedPage) {
	ps.pages = append(ps.pages, page.Posts)
	ps.nextCursor = page.NextCursor
	ps.hasMore = page.NextCursor != ""
	ps.started = true
}

// HasMore reports whether another page should be fetched. A set that has
// never fetched reports true.
func (ps *PageSet) HasMore() bool {
	return !ps.started || ps.hasMore
}

// NextCursor is the cursor for the next fetch, empty for the first page.
func (ps *PageSet) NextCursor() string {
	return ps.nextCursor
}

// Pages exposes the cached page slices. Callers must treat them as
// read-only, pages untouched by a patch keep their identity so views can
// skip re-rendering them.
func (ps *PageSet) Pages() [][]domain.Post {
	return ps.pages
}

// Posts flattens all cached pages in feed order.
func (ps *PageSet) Posts() []domain.Post {
	var res []domain.Post
	for _, page := range ps.pages {
		res = append(res, page...)
	}
	return res
}

// Len is the number of cached post snapshots.
func (ps *PageSet) Len() int {
	n := 0
	for _, page := range ps.pages {
		n += len(page)
	}
	return n
}

func (ps *PageSet) applyLike(d LikeDelta) {
	for i, page := range ps.pages {
		if patched, changed := d.patch(page); changed {
			ps.pages[i] = patched
		}
	}
}
