package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

func TestGetHomeMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)

	mock.ExpectGet(KeyHomeFeed).RedisNil()

	_, err := cache.GetHome(context.Background())
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHomeHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)

	posts := []domain.Post{
		{ID: 2, Content: "second", CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), LikeCount: 3},
		{ID: 1, Content: "first", CreatedAt: time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)},
	}
	data, err := json.Marshal(posts)
	require.NoError(t, err)

	mock.ExpectGet(KeyHomeFeed).SetVal(string(data))

	got, err := cache.GetHome(context.Background())
	require.NoError(t, err)
	assert.Equal(t, posts, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetHomeClearsActorState(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)

	posts := []domain.Post{{ID: 1, Content: "first", LikeCount: 3, LikedByMe: true}}

	cleared := []domain.Post{{ID: 1, Content: "first", LikeCount: 3}}
	data, err := json.Marshal(cleared)
	require.NoError(t, err)

	mock.ExpectSet(KeyHomeFeed, data, homeTTL).SetVal("OK")

	require.NoError(t, cache.SetHome(context.Background(), posts))
	assert.True(t, posts[0].LikedByMe, "caller's slice must not be mutated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDropHome(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)

	mock.ExpectDel(KeyHomeFeed).SetVal(1)

	require.NoError(t, cache.DropHome(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMGetLikeCountsSkipsColdAndGarbage(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)

	keys := []string{
		fmt.Sprintf(KeyLikeCount, int64(1)),
		fmt.Sprintf(KeyLikeCount, int64(2)),
		fmt.Sprintf(KeyLikeCount, int64(3)),
	}
	mock.ExpectMGet(keys...).SetVal([]interface{}{"7", nil, "oops"})

	res, err := cache.MGetLikeCounts(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{1: 7}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMGetLikeCountsEmptyInput(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)

	res, err := cache.MGetLikeCounts(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetLikeCount(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)

	mock.ExpectSet(fmt.Sprintf(KeyLikeCount, int64(42)), int64(7), countTTL).SetVal("OK")

	require.NoError(t, cache.SetLikeCount(context.Background(), 42, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRoundTripStripsFollowState(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)

	profile := domain.Profile{
		User:           domain.User{ID: 9, Name: "alice", Username: "alice"},
		FollowersCount: 7,
		FollowsCount:   3,
		PostsCount:     12,
		IsFollowing:    true,
	}

	stripped := profile
	stripped.IsFollowing = false
	data, err := json.Marshal(&stripped)
	require.NoError(t, err)

	key := fmt.Sprintf(KeyProfile, int64(9))
	mock.ExpectSet(key, data, profileTTL).SetVal("OK")
	mock.ExpectGet(key).SetVal(string(data))

	require.NoError(t, cache.SetProfile(context.Background(), &profile))

	got, err := cache.GetProfile(context.Background(), 9)
	require.NoError(t, err)
	assert.False(t, got.IsFollowing)
	assert.Equal(t, int64(7), got.FollowersCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfileMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)

	mock.ExpectGet(fmt.Sprintf(KeyProfile, int64(9))).RedisNil()

	_, err := cache.GetProfile(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelProfile(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)

	mock.ExpectDel(fmt.Sprintf(KeyProfile, int64(9))).SetVal(1)

	require.NoError(t, cache.DelProfile(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}
