package engagement

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

type Service struct {
	engRepo    domain.EngagementRepository
	userRepo   domain.UserRepository
	cache      domain.PostCache
	bloomRepo  domain.BloomRepository
	syncWorker domain.CacheSyncWorker
}

var _ domain.EngagementUsecase = (*Service)(nil)

// NewService will create a new engagement service object
func NewService(e domain.EngagementRepository, u domain.UserRepository, c domain.PostCache, b domain.BloomRepository, w domain.CacheSyncWorker) *Service {
	return &Service{
		engRepo:    e,
		userRepo:   u,
		cache:      c,
		bloomRepo:  b,
		syncWorker: w,
	}
}

// ToggleLike flips the actor's like edge on a post and reports whether a
// like was added. The store write is synchronous, the cache mirror runs
// through the sync worker off the request path. On error nothing is sent
// to the worker, the cache stays as it was.
func (s *Service) ToggleLike(ctx context.Context, uid, pid int64) (bool, error) {
	if uid == 0 {
		return false, domain.ErrUnauthorized
	}

	exists, err := s.bloomRepo.Exists(ctx, pid)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says post %d does not exist", pid)
		return false, domain.ErrNotFound
	}

	added, err := s.engRepo.ToggleLike(ctx, uid, pid)
	if err != nil {
		return false, err
	}

	action := domain.LikeAction(domain.Unlike)
	if added {
		action = domain.Like
	}
	s.syncWorker.Send(domain.UserLike{PostID: pid, UserID: uid}, action)

	return added, nil
}

// ToggleFollow flips the follow edge and invalidates both cached profile
// summaries, the follower's follows count and the followee's followers
// count both moved.
func (s *Service) ToggleFollow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if followerID == 0 {
		return false, domain.ErrUnauthorized
	}
	if followerID == followeeID {
		return false, domain.ErrBadParamInput
	}

	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return false, err
	}

	added, err := s.engRepo.ToggleFollow(ctx, followerID, followeeID)
	if err != nil {
		return false, err
	}

	for _, uid := range []int64{followerID, followeeID} {
		if err := s.cache.DelProfile(ctx, uid); err != nil {
			logrus.Warnf("failed to drop profile cache for %d: %v", uid, err)
		}
	}

	return added, nil
}

// GetProfile assembles the profile summary: counts are read-time
// aggregates cached with a short TTL, IsFollowing is resolved per actor
// on every call and never cached.
func (s *Service) GetProfile(ctx context.Context, actorID, uid int64) (domain.Profile, error) {
	profile, err := s.cache.GetProfile(ctx, uid)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logrus.Warnf("profile cache get error: %v", err)
		}

		user, err := s.userRepo.GetByID(ctx, uid)
		if err != nil {
			return domain.Profile{}, err
		}

		followers, follows, posts, err := s.engRepo.GetProfileCounts(ctx, uid)
		if err != nil {
			return domain.Profile{}, err
		}

		profile = domain.Profile{
			User:           user,
			FollowersCount: followers,
			FollowsCount:   follows,
			PostsCount:     posts,
		}

		go func(p domain.Profile) {
			if err := s.cache.SetProfile(context.Background(), &p); err != nil {
				logrus.Warnf("failed to set profile cache: %v", err)
			}
		}(profile)
	}

	if actorID != 0 && actorID != uid {
		isFollowing, err := s.engRepo.IsFollowing(ctx, actorID, uid)
		if err != nil {
			return domain.Profile{}, err
		}
		profile.IsFollowing = isFollowing
	}

	return profile, nil
}
