package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

type fakePostDB struct {
	posts      []domain.Post
	liked      map[int64]bool
	likedAll   []int64
	fetchCalls int
	lastFilter domain.FeedFilter
}

func (f *fakePostDB) FetchPage(_ context.Context, filter domain.FeedFilter, _ string, num int64) ([]domain.Post, error) {
	f.fetchCalls++
	f.lastFilter = filter
	if int64(len(f.posts)) > num {
		return f.posts[:num], nil
	}
	return f.posts, nil
}

func (f *fakePostDB) GetByID(_ context.Context, id int64) (domain.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Post{}, domain.ErrNotFound
}

func (f *fakePostDB) Store(_ context.Context, p *domain.Post) error {
	p.ID = 99
	return nil
}

func (f *fakePostDB) Delete(_ context.Context, _ int64) error { return nil }

func (f *fakePostDB) LikedPostIDs(_ context.Context, _ int64, postIDs []int64) (map[int64]bool, error) {
	res := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		res[id] = f.liked[id]
	}
	return res, nil
}

func (f *fakePostDB) FetchUserLikedPosts(_ context.Context, _ int64, _ int64) ([]int64, error) {
	return f.likedAll, nil
}

func (f *fakePostDB) FetchIDs(_ context.Context, _, _ int64) ([]int64, error) { return nil, nil }

type fakeHomeCache struct {
	home      []domain.Post
	counts    map[int64]int64
	likedWarm map[int64]bool
	homeSets  chan []domain.Post
	likedSets chan []int64
	homeDrops chan struct{}
	likedMiss bool
}

func newFakeHomeCache() *fakeHomeCache {
	return &fakeHomeCache{
		homeSets:  make(chan []domain.Post, 4),
		likedSets: make(chan []int64, 4),
		homeDrops: make(chan struct{}, 4),
	}
}

func (f *fakeHomeCache) GetHome(_ context.Context) ([]domain.Post, error) {
	if f.home == nil {
		return nil, domain.ErrCacheMiss
	}
	return f.home, nil
}

func (f *fakeHomeCache) SetHome(_ context.Context, posts []domain.Post) error {
	f.homeSets <- posts
	return nil
}

func (f *fakeHomeCache) DropHome(_ context.Context) error {
	f.homeDrops <- struct{}{}
	return nil
}

func (f *fakeHomeCache) MGetLikeCounts(_ context.Context, postIDs []int64) (map[int64]int64, error) {
	res := make(map[int64]int64)
	for _, id := range postIDs {
		if likes, ok := f.counts[id]; ok {
			res[id] = likes
		}
	}
	return res, nil
}

func (f *fakeHomeCache) SetLikeCount(_ context.Context, _, _ int64) error { return nil }

func (f *fakeHomeCache) IsLikedBatch(_ context.Context, _ int64, postIDs []int64) (map[int64]bool, error) {
	if f.likedMiss {
		return nil, domain.ErrCacheMiss
	}
	res := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		res[id] = f.likedWarm[id]
	}
	return res, nil
}

func (f *fakeHomeCache) SetUserLikedPosts(_ context.Context, _ int64, postIDs []int64) error {
	f.likedSets <- postIDs
	return nil
}

func (f *fakeHomeCache) ApplyLikeDelta(_ context.Context, _, _ int64, _ int64) error { return nil }

func (f *fakeHomeCache) GetProfile(_ context.Context, _ int64) (domain.Profile, error) {
	return domain.Profile{}, domain.ErrCacheMiss
}
func (f *fakeHomeCache) SetProfile(_ context.Context, _ *domain.Profile) error { return nil }
func (f *fakeHomeCache) DelProfile(_ context.Context, _ int64) error           { return nil }

type fakeUsers struct {
	users   map[int64]domain.User
	lastIDs []int64
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Insert(_ context.Context, _ *domain.User) error { return nil }

func (f *fakeUsers) GetByUsername(_ context.Context, _ string) (domain.User, error) {
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUsers) GetByIDs(_ context.Context, userIDs []int64) ([]domain.User, error) {
	f.lastIDs = userIDs
	var res []domain.User
	for _, id := range userIDs {
		if u, ok := f.users[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

func coordFixture() (*fakePostDB, *fakeHomeCache, *fakeUsers) {
	now := time.Now()
	db := &fakePostDB{
		posts: []domain.Post{
			{ID: 3, Content: "c", User: domain.User{ID: 1}, CreatedAt: now},
			{ID: 2, Content: "b", User: domain.User{ID: 2}, CreatedAt: now.Add(-time.Minute)},
			{ID: 1, Content: "a", User: domain.User{ID: 1}, CreatedAt: now.Add(-2 * time.Minute)},
		},
		liked: map[int64]bool{2: true},
	}
	users := &fakeUsers{users: map[int64]domain.User{
		1: {ID: 1, Name: "alice"},
		2: {ID: 2, Name: "bob"},
	}}
	return db, newFakeHomeCache(), users
}

func TestFetchPageHomeCacheHit(t *testing.T) {
	db, cache, users := coordFixture()
	cache.home = []domain.Post{
		{ID: 3, User: domain.User{ID: 1, Name: "alice"}, LikeCount: 1},
		{ID: 2, User: domain.User{ID: 2, Name: "bob"}, LikeCount: 9},
	}
	cache.counts = map[int64]int64{3: 5}
	cache.likedWarm = map[int64]bool{2: true}
	repo := NewPostRepository(db, cache, users)

	posts, err := repo.FetchPage(context.Background(), domain.FeedFilter{Kind: domain.FilterAll, ActorID: 7}, "", HomePageSize)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Zero(t, db.fetchCalls, "warm home cache must not hit the database")
	assert.Equal(t, int64(5), posts[0].LikeCount, "warm count overlays the cached one")
	assert.Equal(t, int64(9), posts[1].LikeCount, "cold count keeps the cached value")
	assert.False(t, posts[0].LikedByMe)
	assert.True(t, posts[1].LikedByMe)

	assert.False(t, cache.home[1].LikedByMe, "shared cached slice must stay untouched")
}

func TestFetchPageHomeCacheMissRebuilds(t *testing.T) {
	db, cache, users := coordFixture()
	repo := NewPostRepository(db, cache, users)

	posts, err := repo.FetchPage(context.Background(), domain.FeedFilter{Kind: domain.FilterAll, ActorID: 0}, "", HomePageSize)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, 1, db.fetchCalls)
	assert.Equal(t, int64(0), db.lastFilter.ActorID, "cache fill must be actor-neutral")
	assert.Equal(t, "alice", posts[0].User.Name, "author details are filled in")

	select {
	case set := <-cache.homeSets:
		assert.Len(t, set, 3)
	case <-time.After(time.Second):
		t.Fatal("expected the rebuilt page to be cached")
	}
}

func TestFetchPageBypassesCacheForOtherQueries(t *testing.T) {
	db, cache, users := coordFixture()
	cache.home = []domain.Post{{ID: 3}}
	repo := NewPostRepository(db, cache, users)

	_, err := repo.FetchPage(context.Background(), domain.FeedFilter{Kind: domain.FilterByAuthor, AuthorID: 1}, "", HomePageSize)
	require.NoError(t, err)
	assert.Equal(t, 1, db.fetchCalls)

	_, err = repo.FetchPage(context.Background(), domain.FeedFilter{Kind: domain.FilterAll}, "somecursor", HomePageSize)
	require.NoError(t, err)
	assert.Equal(t, 2, db.fetchCalls)
}

func TestOverlayFallsBackToDBAndRebuildsLikedSet(t *testing.T) {
	db, cache, users := coordFixture()
	cache.home = []domain.Post{{ID: 3}, {ID: 2}}
	cache.likedMiss = true
	db.likedAll = []int64{2}
	repo := NewPostRepository(db, cache, users)

	posts, err := repo.FetchPage(context.Background(), domain.FeedFilter{Kind: domain.FilterAll, ActorID: 7}, "", HomePageSize)
	require.NoError(t, err)

	assert.False(t, posts[0].LikedByMe)
	assert.True(t, posts[1].LikedByMe, "cold liked set falls back to the database")

	select {
	case rebuilt := <-cache.likedSets:
		assert.Equal(t, []int64{2}, rebuilt)
	case <-time.After(time.Second):
		t.Fatal("expected the liked set to be rebuilt in the background")
	}
}

func TestStoreDropsHomeCache(t *testing.T) {
	db, cache, users := coordFixture()
	repo := NewPostRepository(db, cache, users)

	p := &domain.Post{Content: "hello", User: domain.User{ID: 1}}
	require.NoError(t, repo.Store(context.Background(), p))
	assert.Equal(t, int64(99), p.ID)

	select {
	case <-cache.homeDrops:
	case <-time.After(time.Second):
		t.Fatal("expected the home cache to be dropped after a new post")
	}
}

func TestFillUserDetailsDedupes(t *testing.T) {
	db, cache, users := coordFixture()
	repo := NewPostRepository(db, cache, users)

	posts, err := repo.FetchPage(context.Background(), domain.FeedFilter{Kind: domain.FilterByAuthor, AuthorID: 1}, "", 20)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.ElementsMatch(t, []int64{1, 2}, users.lastIDs, "author lookup is batched and deduped")
	assert.Equal(t, "bob", posts[1].User.Name)
}
