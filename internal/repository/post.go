package repository

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

// HomePageSize is the only page size served from the home cache: the
// default page plus the look-ahead row the paginator uses to decide
// whether more posts exist.
const HomePageSize = DefaultPageNum + 1

// postRepository 协调层，协调缓存和数据库
type postRepository struct {
	db        domain.PostDBRepository
	cache     domain.PostCache
	userRepo  domain.UserRepository
	homeGroup singleflight.Group
}

var _ domain.PostRepository = (*postRepository)(nil)

// NewPostRepository 创建协调层repository
func NewPostRepository(db domain.PostDBRepository, cache domain.PostCache, userRepo domain.UserRepository) *postRepository {
	return &postRepository{
		db:       db,
		cache:    cache,
		userRepo: userRepo,
	}
}

// FetchPage serves the first page of the all-posts feed from the home
// cache when it is warm, everything else straight from the database.
// Cached pages are actor-neutral, the actor's like state and any warm
// like counts are overlaid per request.
func (r *postRepository) FetchPage(ctx context.Context, filter domain.FeedFilter, cursor string, num int64) ([]domain.Post, error) {
	if filter.Kind == domain.FilterAll && cursor == "" && num == HomePageSize {
		posts, err := r.cache.GetHome(ctx)
		if err == nil {
			return r.overlayActorState(ctx, filter.ActorID, posts)
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			logrus.Warnf("home cache get error: %v", err)
		}

		// 缓存未命中，使用singleflight避免缓存击穿
		result, err, _ := r.homeGroup.Do("home", func() (any, error) {
			neutral := domain.FeedFilter{Kind: domain.FilterAll}
			posts, err := r.fetchFromDB(ctx, neutral, "", num)
			if err != nil {
				return nil, err
			}

			go func(data []domain.Post) {
				if err := r.cache.SetHome(context.Background(), data); err != nil {
					logrus.Warnf("failed to set home cache: %v", err)
				}
			}(posts)

			return posts, nil
		})
		if err != nil {
			return nil, err
		}

		return r.overlayActorState(ctx, filter.ActorID, result.([]domain.Post))
	}

	return r.fetchFromDB(ctx, filter, cursor, num)
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	post, err := r.db.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}

	user, err := r.userRepo.GetByID(ctx, post.User.ID)
	if err != nil {
		return domain.Post{}, err
	}
	post.User = user

	return post, nil
}

// Store creates the post and drops the home cache, the new post belongs
// on the first page.
func (r *postRepository) Store(ctx context.Context, p *domain.Post) error {
	if err := r.db.Store(ctx, p); err != nil {
		return err
	}

	go func() {
		if err := r.cache.DropHome(context.Background()); err != nil {
			logrus.Warnf("failed to drop home cache: %v", err)
		}
	}()

	return nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.Delete(ctx, id); err != nil {
		return err
	}

	go func() {
		if err := r.cache.DropHome(context.Background()); err != nil {
			logrus.Warnf("failed to drop home cache: %v", err)
		}
	}()

	return nil
}

// FetchIDs 获取帖子ID列表
func (r *postRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	return r.db.FetchIDs(ctx, cursor, limit)
}

func (r *postRepository) fetchFromDB(ctx context.Context, filter domain.FeedFilter, cursor string, num int64) ([]domain.Post, error) {
	posts, err := r.db.FetchPage(ctx, filter, cursor, num)
	if err != nil {
		return nil, err
	}
	return r.fillUserDetails(ctx, posts)
}

// overlayActorState rewrites a cached page for one actor: warm like
// counts replace the counts frozen at cache-fill time, and LikedByMe is
// resolved from the liked-set cache with a database fallback. The cached
// slice is shared across requests and never mutated in place.
func (r *postRepository) overlayActorState(ctx context.Context, actorID int64, cached []domain.Post) ([]domain.Post, error) {
	posts := make([]domain.Post, len(cached))
	copy(posts, cached)

	ids := make([]int64, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	counts, err := r.cache.MGetLikeCounts(ctx, ids)
	if err != nil {
		logrus.Warnf("failed to MGetLikeCounts from redis: %v", err)
	} else {
		for i := range posts {
			if likes, ok := counts[posts[i].ID]; ok {
				posts[i].LikeCount = likes
			}
		}
	}

	if actorID == 0 {
		return posts, nil
	}

	liked, err := r.cache.IsLikedBatch(ctx, actorID, ids)
	if errors.Is(err, domain.ErrCacheMiss) {
		liked, err = r.db.LikedPostIDs(ctx, actorID, ids)
		if err != nil {
			return nil, err
		}

		// 顺便重建该用户的点赞集合
		go func(uid int64) {
			likedPosts, err := r.db.FetchUserLikedPosts(context.Background(), uid, domain.LikeRecordLimit)
			if err != nil {
				logrus.Warnf("failed to FetchUserLikedPosts from db: %v", err)
				return
			}
			if err := r.cache.SetUserLikedPosts(context.Background(), uid, likedPosts); err != nil {
				logrus.Warnf("failed to SetUserLikedPosts to redis: %v", err)
			}
		}(actorID)
	} else if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].LikedByMe = liked[posts[i].ID]
	}
	return posts, nil
}

// fillUserDetails 批量填充作者信息
func (r *postRepository) fillUserDetails(ctx context.Context, posts []domain.Post) ([]domain.Post, error) {
	if len(posts) == 0 {
		return posts, nil
	}

	// 收集所有不重复的UserID
	userIDs := make([]int64, 0, len(posts))
	existMap := make(map[int64]bool)
	for _, item := range posts {
		if !existMap[item.User.ID] {
			userIDs = append(userIDs, item.User.ID)
			existMap[item.User.ID] = true
		}
	}

	// 批量查询用户
	users, err := r.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	// 转成Map方便查找
	userMap := make(map[int64]domain.User)
	for _, u := range users {
		userMap[u.ID] = u
	}

	// 填充回Post
	for i := range posts {
		if u, ok := userMap[posts[i].User.ID]; ok {
			posts[i].User = u
		}
	}

	return posts, nil
}
