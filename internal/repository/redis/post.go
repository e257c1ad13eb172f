package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

const (
	KeyHomeFeed       = "post:home"
	KeyUserLikedPosts = "post:user:%d:liked"
	KeyLikeCount      = "post:likes:%d"
	KeyProfile        = "profile:%d"

	homeTTL     = 30 * time.Second
	likedSetTTL = 30 * time.Minute
	countTTL    = 30 * time.Minute
	profileTTL  = time.Minute
)

type postCache struct {
	client *redis.Client
}

var _ domain.PostCache = (*postCache)(nil)

func NewPostCache(client *redis.Client) *postCache {
	return &postCache{
		client,
	}
}

func (c *postCache) GetHome(ctx context.Context) ([]domain.Post, error) {
	data, err := c.client.Get(ctx, KeyHomeFeed).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	} else if err != nil {
		return nil, err
	}

	var posts []domain.Post
	if err = json.Unmarshal(data, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SetHome caches the first page of the all-posts feed. LikedByMe is
// actor-relative, so it is cleared before write and overlaid on read.
func (c *postCache) SetHome(ctx context.Context, posts []domain.Post) error {
	cleared := make([]domain.Post, len(posts))
	copy(cleared, posts)
	for i := range cleared {
		cleared[i].LikedByMe = false
	}

	data, err := json.Marshal(cleared)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeyHomeFeed, data, homeTTL).Err()
}

func (c *postCache) DropHome(ctx context.Context) error {
	return c.client.Del(ctx, KeyHomeFeed).Err()
}

func (c *postCache) MGetLikeCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	keys := make([]string, len(postIDs))
	for i, pid := range postIDs {
		keys[i] = fmt.Sprintf(KeyLikeCount, pid)
	}

	result, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	res := make(map[int64]int64)
	for i, val := range result {
		if val == nil {
			continue
		}

		valStr, ok := val.(string)
		if !ok {
			logrus.Errorf("invalid type in redis for like count, id: %d, val: %v", postIDs[i], val)
			continue
		}

		likes, err := strconv.ParseInt(valStr, 10, 64)
		if err != nil {
			logrus.Errorf("failed to strconv.ParseInt in redis, id: %d, err: %v", postIDs[i], err)
			continue
		}
		res[postIDs[i]] = likes
	}
	return res, nil
}

func (c *postCache) SetLikeCount(ctx context.Context, postID, likes int64) error {
	return c.client.Set(ctx, fmt.Sprintf(KeyLikeCount, postID), likes, countTTL).Err()
}

func (c *postCache) IsLikedBatch(ctx context.Context, uid int64, postIDs []int64) (map[int64]bool, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	args := make([]any, len(postIDs))
	for i, pid := range postIDs {
		args[i] = any(pid)
	}

	script := redis.NewScript(`
        if redis.call('EXISTS', KEYS[1]) == 0 then
            return nil
        end

        redis.call('EXPIRE', KEYS[1], 60*30)

        local results = {}
        for i, id in ipairs(ARGV) do
            results[i] = redis.call('SISMEMBER', KEYS[1], id)
        end
        return results
    `)
	result, err := script.Run(ctx, c.client, []string{fmt.Sprintf(KeyUserLikedPosts, uid)}, args).Slice()

	if err == redis.Nil {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	resMap := make(map[int64]bool)
	for i, val := range result {
		resMap[postIDs[i]] = (val.(int64) == 1)
	}

	return resMap, nil
}

func (c *postCache) SetUserLikedPosts(ctx context.Context, uid int64, postIDs []int64) error {
	key := fmt.Sprintf(KeyUserLikedPosts, uid)

	// 空集合也要写入占位, 否则无赞用户每次都会穿透到数据库
	if len(postIDs) == 0 {
		script := redis.NewScript(`
			if redis.call('EXISTS', KEYS[1]) == 0 then
				redis.call('SADD', KEYS[1], '0')
			end
			redis.call('EXPIRE', KEYS[1], ARGV[1])
			return 1
		`)
		return script.Run(ctx, c.client, []string{key}, int(likedSetTTL.Seconds())).Err()
	}

	ipids := make([]any, len(postIDs))
	for i, pid := range postIDs {
		ipids[i] = any(pid)
	}
	pipe := c.client.Pipeline()
	pipe.SAdd(ctx, key, ipids...)
	pipe.Expire(ctx, key, likedSetTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// ApplyLikeDelta mirrors one confirmed toggle into the liked set and the
// like-count buffer. Cold keys are left alone, they get rebuilt from the
// store on their next read.
func (c *postCache) ApplyLikeDelta(ctx context.Context, uid, pid int64, delta int64) error {
	// KEYS = {该用户点赞的帖子集合, 帖子点赞数}
	// ARGV = {帖子ID, 点赞增量}
	keys := []string{
		fmt.Sprintf(KeyUserLikedPosts, uid),
		fmt.Sprintf(KeyLikeCount, pid),
	}
	args := []any{pid, delta}
	var script = redis.NewScript(`
		if redis.call('EXISTS', KEYS[1]) == 1 then
			if tonumber(ARGV[2]) > 0 then
				redis.call('SADD', KEYS[1], ARGV[1])
			else
				redis.call('SREM', KEYS[1], ARGV[1])
			end
			redis.call('EXPIRE', KEYS[1], 1800)
		end

		if redis.call('EXISTS', KEYS[2]) == 1 then
			redis.call('INCRBY', KEYS[2], ARGV[2])
		end

		return 1
	`)

	return script.Run(ctx, c.client, keys, args).Err()
}

func (c *postCache) GetProfile(ctx context.Context, uid int64) (domain.Profile, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyProfile, uid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Profile{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.Profile{}, err
	}

	var p domain.Profile
	if err = json.Unmarshal(data, &p); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

func (c *postCache) SetProfile(ctx context.Context, p *domain.Profile) error {
	// IsFollowing 与请求者相关, 不进缓存
	cached := *p
	cached.IsFollowing = false

	data, err := json.Marshal(&cached)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fmt.Sprintf(KeyProfile, cached.User.ID), data, profileTTL).Err()
}

func (c *postCache) DelProfile(ctx context.Context, uid int64) error {
	return c.client.Del(ctx, fmt.Sprintf(KeyProfile, uid)).Err()
}
