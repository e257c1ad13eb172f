package domain

import "context"

type LikeAction int8

const (
	Like   = 1
	Unlike = -1
)

func (l LikeAction) String() string {
	switch l {
	case Like:
		return "ADD"
	case Unlike:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}

// CacheSyncWorker fans confirmed like toggles out to the cache off the
// request path. The store is written synchronously by the usecase, so a
// lost event only leaves the cache stale until its next rebuild.
type CacheSyncWorker interface {
	Start(ctx context.Context)

	// Send enqueues one confirmed toggle, non-blocking.
	Send(likeRecord UserLike, action LikeAction)
}
