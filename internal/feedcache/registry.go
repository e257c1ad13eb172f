package feedcache

import (
	"sync"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

// Key identifies one page set: the view that owns it plus the filter its
// cursor was issued under. Cursors are only valid for the filter they
// came from, so the filter is part of the identity.
type Key struct {
	ViewID string
	Filter domain.FeedFilter
}

// Registry is the explicit home of every live page set and cached
// profile summary, passed to whoever needs it instead of living in a
// process-wide singleton. A confirmed mutation is patched into every
// registered set before the mutating call returns, there is no partial
// state observable between sets.
type Registry struct {
	mu       sync.Mutex
	sets     map[Key]*PageSet
	profiles map[int64]domain.Profile
}

func NewRegistry() *Registry {
	return &Registry{
		sets:     make(map[Key]*PageSet),
		profiles: make(map[int64]domain.Profile),
	}
}

// PageSet returns the page set for key, creating an empty one on first
// use.
func (r *Registry) PageSet(key Key) *PageSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, ok := r.sets[key]
	if !ok {
		ps = &PageSet{}
		r.sets[key] = ps
	}
	return ps
}

// Drop forgets a view's page set, e.g. when the view goes away. An
// in-flight fetch for it may simply be abandoned, the paginator is
// stateless.
func (r *Registry) Drop(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, key)
}

// Append records a fetched page into the keyed page set.
func (r *Registry) Append(key Key, page domain.FeedPage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, ok := r.sets[key]
	if !ok {
		ps = &PageSet{}
		r.sets[key] = ps
	}
	ps.Append(page)
}

// ApplyLikeDelta patches every registered page set with one confirmed
// like toggle. Runs to completion before returning.
func (r *Registry) ApplyLikeDelta(d LikeDelta) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ps := range r.sets {
		ps.applyLike(d)
	}
}

// Profile returns the cached profile summary for uid, if any.
func (r *Registry) Profile(uid int64) (domain.Profile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[uid]
	return p, ok
}

// PutProfile caches a fetched profile summary.
func (r *Registry) PutProfile(p domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.User.ID] = p
}

// ApplyFollowDelta patches the single cached profile summary of the
// toggled author. Feed pages containing the author's posts are left
// alone.
func (r *Registry) ApplyFollowDelta(authorID int64, added bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[authorID]
	if !ok {
		return
	}
	r.profiles[authorID] = patchProfile(p, added)
}
