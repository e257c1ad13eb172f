package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

type LikeTask struct {
	PostID int64
	UserID int64
	Action domain.LikeAction
}

// cacheSyncWorker mirrors confirmed like toggles into redis in batches.
// The database is written synchronously by the usecase before an event
// reaches this worker, so dropping a task only leaves the cache stale
// until its TTL or next rebuild.
type cacheSyncWorker struct {
	cache domain.PostCache
	ch    chan LikeTask
}

var _ domain.CacheSyncWorker = (*cacheSyncWorker)(nil)

func NewCacheSyncWorker(cache domain.PostCache) *cacheSyncWorker {
	return &cacheSyncWorker{
		cache: cache,
		ch:    make(chan LikeTask, 1024),
	}
}

// Send enqueues a confirmed toggle, non-blocking.
func (s *cacheSyncWorker) Send(likeRecord domain.UserLike, action domain.LikeAction) {
	select {
	case s.ch <- LikeTask{likeRecord.PostID, likeRecord.UserID, action}:
	default:
		logrus.Info("CacheSyncWorker's channel is full, task dropped")
	}
}

func (s *cacheSyncWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	const batchSize = 100
	batch := make([]LikeTask, 0, batchSize)
	for {
		select {
		case task := <-s.ch:
			batch = append(batch, task)
			if len(batch) == batchSize {
				s.flush(ctx, batch)
				batch = make([]LikeTask, 0, batchSize)
			}
		case <-ticker.C:
			s.flush(ctx, batch)
			batch = make([]LikeTask, 0)
		case <-ctx.Done():
			logrus.Info("shutting down CacheSyncWorker, flushing remaining tasks...")
			s.flush(context.Background(), batch)
			return
		}
	}
}

type taskKey struct {
	pid, uid int64
}

// flush coalesces the batch per (user, post) pair, the last toggle wins,
// then applies one delta per pair and drops the home page cache so its
// next fill sees fresh counts.
func (s *cacheSyncWorker) flush(ctx context.Context, batch []LikeTask) {
	if len(batch) == 0 {
		return
	}

	tasks := make(map[taskKey]domain.LikeAction)
	for i := range batch {
		key := taskKey{
			pid: batch[i].PostID,
			uid: batch[i].UserID,
		}
		tasks[key] = batch[i].Action
	}

	for key, action := range tasks {
		var delta int64
		switch action {
		case domain.Like:
			delta = 1
		case domain.Unlike:
			delta = -1
		default:
			logrus.Errorf("Unsupported action: %v", action)
			continue
		}

		if err := s.cache.ApplyLikeDelta(ctx, key.uid, key.pid, delta); err != nil {
			logrus.Errorf("failed to ApplyLikeDelta for user %d post %d: %v", key.uid, key.pid, err)
		}
	}

	if err := s.cache.DropHome(ctx); err != nil {
		logrus.Warnf("failed to drop home cache: %v", err)
	}
}
