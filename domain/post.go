package domain

import (
	"context"
	"time"
)

// Post is representing the Post data struct.
// A post is immutable once created, only its derived like state changes.
type Post struct {
	ID        int64     // Unique identifier, descending tiebreak within a timestamp
	Content   string    // Post body text
	User      User      // Author information
	CreatedAt time.Time // Creation timestamp
	LikeCount int64     // Aggregate count of like edges, derived
	LikedByMe bool      // Whether the requesting actor liked this post, derived
}

// FilterKind selects which posts a feed query matches.
type FilterKind int8

const (
	// FilterAll matches every post.
	FilterAll FilterKind = iota
	// FilterFollowing matches posts whose author the actor follows.
	// Degrades to FilterAll when the actor is unauthenticated.
	FilterFollowing
	// FilterByAuthor matches posts of a single author.
	FilterByAuthor
)

// FeedFilter describes one feed query. ActorID is the requesting user
// (0 when unauthenticated) and drives both the Following filter and the
// LikedByMe computation. Comparable, so it can key cached page sets.
type FeedFilter struct {
	Kind     FilterKind
	ActorID  int64
	AuthorID int64 // only for FilterByAuthor
}

// FeedPage is one bounded page of a feed in (created_at, id) descending
// order. An empty NextCursor signals the end of the stream.
type FeedPage struct {
	Posts      []Post
	NextCursor string
}

// PostDBRepository is the database access layer for posts.
type PostDBRepository interface {
	// FetchPage retrieves up to num posts matching filter, strictly after
	// the cursor boundary in (created_at, id) descending order. LikeCount
	// and LikedByMe (for filter.ActorID) are computed in the same query.
	// A malformed cursor returns ErrBadParamInput.
	FetchPage(ctx context.Context, filter FeedFilter, cursor string, num int64) ([]Post, error)

	// GetByID retrieves a single post.
	// Returns ErrNotFound if the post doesn't exist.
	GetByID(ctx context.Context, id int64) (Post, error)

	// Store creates a new post and backfills ID and CreatedAt.
	Store(ctx context.Context, p *Post) error

	// Delete removes a post. Administrative only, posts are otherwise
	// immutable.
	Delete(ctx context.Context, id int64) error

	// LikedPostIDs reports which of the given posts the user liked.
	LikedPostIDs(ctx context.Context, uid int64, postIDs []int64) (map[int64]bool, error)

	// FetchUserLikedPosts lists post IDs the user liked, newest first,
	// at most limit entries. Used to rebuild the liked-set cache.
	FetchUserLikedPosts(ctx context.Context, uid int64, limit int64) ([]int64, error)

	// FetchIDs pages over all post IDs, for bloom filter warmup.
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
}

// PostRepository is the coordination layer the usecases talk to. Same
// contract as PostDBRepository for reads and writes, but backed by the
// cache where possible.
type PostRepository interface {
	FetchPage(ctx context.Context, filter FeedFilter, cursor string, num int64) ([]Post, error)
	GetByID(ctx context.Context, id int64) (Post, error)
	Store(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id int64) error
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
}

// FeedUsecase is the feed paginator contract.
type FeedUsecase interface {
	// FetchPage returns at most limit posts after cursor, plus the cursor
	// for the next page. Limit falls back to the default page size when it
	// is not a positive integer within bounds. An empty cursor starts from
	// the newest post. A cursor whose boundary post no longer exists ends
	// the stream instead of failing.
	FetchPage(ctx context.Context, filter FeedFilter, limit int64, cursor string) (FeedPage, error)

	// Store creates a post for an authenticated actor.
	Store(ctx context.Context, p *Post) error

	// InitBloomFilter warms the post-existence bloom filter from the DB.
	InitBloomFilter(ctx context.Context) error
}
