package domain

import "context"

// PostCache is the server-side redis cache in front of the post store.
// Every method that can miss returns ErrCacheMiss, the caller decides
// whether to rebuild.
type PostCache interface {
	// Home page (first page of the all-posts feed).
	GetHome(ctx context.Context) ([]Post, error)
	SetHome(ctx context.Context, posts []Post) error
	DropHome(ctx context.Context) error

	// Like counts. Values exist only while warm, MGetLikeCounts reports
	// only the IDs it found.
	MGetLikeCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error)
	SetLikeCount(ctx context.Context, postID, likes int64) error

	// Per-user liked sets.
	IsLikedBatch(ctx context.Context, uid int64, postIDs []int64) (map[int64]bool, error)
	SetUserLikedPosts(ctx context.Context, uid int64, postIDs []int64) error

	// ApplyLikeDelta mirrors one confirmed toggle into the liked set and
	// the like-count buffer, touching only keys that are already warm.
	ApplyLikeDelta(ctx context.Context, uid, pid int64, delta int64) error

	// Profile summaries (counts only, IsFollowing is never cached).
	GetProfile(ctx context.Context, uid int64) (Profile, error)
	SetProfile(ctx context.Context, p *Profile) error
	DelProfile(ctx context.Context, uid int64) error
}
