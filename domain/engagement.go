package domain

import "context"

// Profile is the per-user summary shown on a profile page. Counts are
// read-time aggregates over the edge tables, IsFollowing is relative to
// the requesting actor and is never cached.
type Profile struct {
	User           User
	FollowersCount int64
	FollowsCount   int64
	PostsCount     int64
	IsFollowing    bool
}

// EngagementRepository persists like and follow edges.
type EngagementRepository interface {
	// ToggleLike creates the (uid, pid) like edge if absent, deletes it if
	// present. A single conditional operation, no lost updates on
	// double-submit. Reports whether the edge was added.
	ToggleLike(ctx context.Context, uid, pid int64) (added bool, err error)

	// ToggleFollow is ToggleLike for follow edges.
	ToggleFollow(ctx context.Context, followerID, followeeID int64) (added bool, err error)

	// GetProfileCounts aggregates followers/follows/posts for one user.
	GetProfileCounts(ctx context.Context, uid int64) (followers, follows, posts int64, err error)

	// IsFollowing reports whether the follow edge exists.
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
}

// EngagementUsecase is the mutation side of the feed: like and follow
// toggles plus the profile summary they patch.
type EngagementUsecase interface {
	// ToggleLike requires an authenticated actor (uid != 0) and an
	// existing post. Returns whether a like was added.
	ToggleLike(ctx context.Context, uid, pid int64) (added bool, err error)

	// ToggleFollow requires an authenticated actor. Self-follows are
	// rejected with ErrBadParamInput.
	ToggleFollow(ctx context.Context, followerID, followeeID int64) (added bool, err error)

	// GetProfile returns the profile summary of uid as seen by actorID
	// (0 for unauthenticated, IsFollowing then always false).
	GetProfile(ctx context.Context, actorID, uid int64) (Profile, error)
}
