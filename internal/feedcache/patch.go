package feedcache

import (
	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

// LikeDelta is one confirmed like toggle: the post it hit and whether
// the edge was added. It describes a single known delta, never an
// authoritative count, other actors' concurrent toggles stay invisible
// until a refetch.
type LikeDelta struct {
	PostID int64
	Added  bool
}

// patch applies the delta to one page. Order-preserving and pure: when
// the page does not contain the post the original slice is returned
// unchanged (same identity), otherwise a patched copy is returned and
// the matching snapshots get LikeCount shifted by one and LikedByMe set
// to the toggle's outcome.
func (d LikeDelta) patch(page []domain.Post) ([]domain.Post, bool) {
	hit := false
	for i := range page {
		if page[i].ID == d.PostID {
			hit = true
			break
		}
	}
	if !hit {
		return page, false
	}

	modifier := int64(-1)
	if d.Added {
		modifier = 1
	}

	patched := make([]domain.Post, len(page))
	copy(patched, page)
	for i := range patched {
		if patched[i].ID == d.PostID {
			patched[i].LikeCount += modifier
			patched[i].LikedByMe = d.Added
		}
	}
	return patched, true
}

// patchProfile applies a confirmed follow toggle to a cached profile
// summary: follower count moves by one and IsFollowing mirrors the
// outcome. Feed pages are never rewritten for follow state, it is not
// denormalized onto posts.
func patchProfile(p domain.Profile, added bool) domain.Profile {
	modifier := int64(-1)
	if added {
		modifier = 1
	}
	p.FollowersCount += modifier
	p.IsFollowing = added
	return p
}
