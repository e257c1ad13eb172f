package domain

import "time"

const (
	// 默认每个用户只缓存最近点赞的300篇帖子
	LikeRecordLimit = 300
)

// UserLike is representing a like edge. At most one per (user, post) pair,
// enforced by the store.
type UserLike struct {
	PostID    int64
	UserID    int64
	CreatedAt time.Time
}

// Follow is representing a follow edge. At most one per
// (follower, followee) pair, enforced by the store.
type Follow struct {
	FollowerID int64
	FolloweeID int64
	CreatedAt  time.Time
}
