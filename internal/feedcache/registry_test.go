package feedcache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

func TestRegistryGetOrCreate(t *testing.T) {
	reg := NewRegistry()
	key := Key{ViewID: "home", Filter: domain.FeedFilter{Kind: domain.FilterAll, ActorID: 1}}

	ps := reg.PageSet(key)
	assert.NotNil(t, ps)
	assert.Same(t, ps, reg.PageSet(key), "same key returns the same set")

	other := Key{ViewID: "home", Filter: domain.FeedFilter{Kind: domain.FilterFollowing, ActorID: 1}}
	assert.NotSame(t, ps, reg.PageSet(other), "filter is part of the identity")
}

func TestRegistryDrop(t *testing.T) {
	reg := NewRegistry()
	key := Key{ViewID: "home"}

	ps := reg.PageSet(key)
	ps.Append(domain.FeedPage{Posts: makePage(1), NextCursor: ""})

	reg.Drop(key)
	assert.Equal(t, 0, reg.PageSet(key).Len(), "dropped key starts fresh")
}

func TestRegistryApplyLikeDeltaPatchesAllSets(t *testing.T) {
	reg := NewRegistry()
	home := Key{ViewID: "home", Filter: domain.FeedFilter{Kind: domain.FilterAll, ActorID: 1}}
	profile := Key{ViewID: "profile-9", Filter: domain.FeedFilter{Kind: domain.FilterByAuthor, ActorID: 1, AuthorID: 9}}

	// post 2 appears in both sets
	reg.Append(home, domain.FeedPage{Posts: makePage(1, 2, 3), NextCursor: "c1"})
	reg.Append(profile, domain.FeedPage{Posts: makePage(2), NextCursor: ""})

	reg.ApplyLikeDelta(LikeDelta{PostID: 2, Added: true})

	for _, key := range []Key{home, profile} {
		for _, p := range reg.PageSet(key).Posts() {
			if p.ID == 2 {
				assert.Equal(t, int64(6), p.LikeCount)
				assert.True(t, p.LikedByMe)
			} else {
				assert.Equal(t, int64(5), p.LikeCount)
				assert.False(t, p.LikedByMe)
			}
		}
	}
}

func TestRegistryFollowDeltaTouchesOnlyProfile(t *testing.T) {
	reg := NewRegistry()
	home := Key{ViewID: "home"}
	reg.Append(home, domain.FeedPage{Posts: makePage(1, 2), NextCursor: ""})
	pagesBefore := reg.PageSet(home).Pages()

	reg.PutProfile(domain.Profile{User: domain.User{ID: 9}, FollowersCount: 3})
	reg.ApplyFollowDelta(9, true)

	p, ok := reg.Profile(9)
	assert.True(t, ok)
	assert.Equal(t, int64(4), p.FollowersCount)
	assert.True(t, p.IsFollowing)

	pagesAfter := reg.PageSet(home).Pages()
	assert.Same(t, &pagesBefore[0][0], &pagesAfter[0][0], "feed pages are not rewritten on follow")
}

func TestRegistryFollowDeltaUnknownProfile(t *testing.T) {
	reg := NewRegistry()
	reg.ApplyFollowDelta(404, true)

	_, ok := reg.Profile(404)
	assert.False(t, ok)
}
