// Package feedclient drives feed views against the service: it pages
// feeds into cached page sets and, after a confirmed like or follow
// toggle, reconciles every cached view in memory instead of refetching.
package feedclient

import (
	"context"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
	"github.com/Guyuepp/Go-Clean-Architecture-Feed/internal/feedcache"
)

// Client owns one actor's registry of page sets. It never assumes it
// owns the authoritative counts: a patch only mirrors the single toggle
// it just confirmed, other actors' activity shows up on the next
// refetch.
type Client struct {
	feeds   domain.FeedUsecase
	engage  domain.EngagementUsecase
	actorID int64
	limit   int64
	reg     *feedcache.Registry
}

// New creates a client for one actor. actorID 0 is an unauthenticated
// browser: paging works, mutations fail with ErrUnauthorized.
func New(feeds domain.FeedUsecase, engage domain.EngagementUsecase, actorID, limit int64) *Client {
	return &Client{
		feeds:   feeds,
		engage:  engage,
		actorID: actorID,
		limit:   limit,
		reg:     feedcache.NewRegistry(),
	}
}

// Registry exposes the client's page sets, e.g. for views to read.
func (c *Client) Registry() *feedcache.Registry {
	return c.reg
}

// LoadMore fetches the next page for the view into its page set and
// reports whether more pages remain. Returns false without a fetch once
// the stream ended. The filter's actor is forced to the client's own,
// a page set never mixes actors.
func (c *Client) LoadMore(ctx context.Context, viewID string, filter domain.FeedFilter) (bool, error) {
	filter.ActorID = c.actorID
	key := feedcache.Key{ViewID: viewID, Filter: filter}

	ps := c.reg.PageSet(key)
	if !ps.HasMore() {
		return false, nil
	}

	page, err := c.feeds.FetchPage(ctx, filter, c.limit, ps.NextCursor())
	if err != nil {
		return false, err
	}

	c.reg.Append(key, page)
	return ps.HasMore(), nil
}

// ToggleLike submits the toggle and, on success, patches every cached
// page set before returning. On error nothing is patched, the cached
// state is exactly as it was. Callers must not issue a second toggle for
// the same post before this one returns, e.g. disable the control while
// in flight, otherwise the two patches can double-apply.
func (c *Client) ToggleLike(ctx context.Context, postID int64) (bool, error) {
	added, err := c.engage.ToggleLike(ctx, c.actorID, postID)
	if err != nil {
		return false, err
	}

	c.reg.ApplyLikeDelta(feedcache.LikeDelta{PostID: postID, Added: added})
	return added, nil
}

// ToggleFollow submits the toggle and, on success, patches the author's
// cached profile summary. Feed pages are untouched, follow state is not
// denormalized onto posts. The same in-flight serialization obligation
// as ToggleLike applies.
func (c *Client) ToggleFollow(ctx context.Context, authorID int64) (bool, error) {
	added, err := c.engage.ToggleFollow(ctx, c.actorID, authorID)
	if err != nil {
		return false, err
	}

	c.reg.ApplyFollowDelta(authorID, added)
	return added, nil
}

// LoadProfile fetches a profile summary into the registry.
func (c *Client) LoadProfile(ctx context.Context, uid int64) (domain.Profile, error) {
	profile, err := c.engage.GetProfile(ctx, c.actorID, uid)
	if err != nil {
		return domain.Profile{}, err
	}

	c.reg.PutProfile(profile)
	return profile, nil
}
