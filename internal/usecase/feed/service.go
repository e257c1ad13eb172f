package feed

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
	"github.com/Guyuepp/Go-Clean-Architecture-Feed/internal/repository"
)

const (
	// MaxPostLen bounds the post body.
	MaxPostLen = 280

	bloomInitBatch = 1000
)

type Service struct {
	postRepo  domain.PostRepository
	bloomRepo domain.BloomRepository
}

var _ domain.FeedUsecase = (*Service)(nil)

// NewService will create a new feed service object
func NewService(p domain.PostRepository, b domain.BloomRepository) *Service {
	return &Service{
		postRepo:  p,
		bloomRepo: b,
	}
}

// FetchPage implements the cursor pagination contract: ask the store for
// limit+1 posts strictly after the cursor boundary, emit the first limit
// of them, and issue the last emitted post's (createdAt, id) as the next
// cursor when the extra row proved more posts exist.
func (s *Service) FetchPage(ctx context.Context, filter domain.FeedFilter, limit int64, cursor string) (domain.FeedPage, error) {
	repository.PageVerify(&limit)

	// 未登录时 Following 过滤器退化为全量feed, 这是文档化的降级而不是错误
	if filter.Kind == domain.FilterFollowing && filter.ActorID == 0 {
		filter.Kind = domain.FilterAll
	}

	if cursor != "" {
		_, boundaryID, err := repository.DecodeCursor(cursor)
		if err != nil {
			return domain.FeedPage{}, domain.ErrBadParamInput
		}

		// A cursor whose boundary post is gone ends the stream instead of
		// failing. The bloom filter only ever says "definitely absent",
		// false positives fall through to the keyset query and stay
		// correct.
		exists, err := s.bloomRepo.Exists(ctx, boundaryID)
		if err == nil && !exists {
			logrus.Warnf("cursor boundary post %d does not exist, ending stream", boundaryID)
			return domain.FeedPage{}, nil
		}
	}

	posts, err := s.postRepo.FetchPage(ctx, filter, cursor, limit+1)
	if err != nil {
		return domain.FeedPage{}, err
	}

	page := domain.FeedPage{Posts: posts}
	if int64(len(posts)) > limit {
		page.Posts = posts[:limit]
		last := page.Posts[limit-1]
		page.NextCursor = repository.EncodeCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

func (s *Service) Store(ctx context.Context, p *domain.Post) error {
	if p.User.ID == 0 {
		return domain.ErrUnauthorized
	}

	content := strings.TrimSpace(p.Content)
	if content == "" || len(content) > MaxPostLen {
		return domain.ErrBadParamInput
	}
	p.Content = content

	if err := s.postRepo.Store(ctx, p); err != nil {
		return err
	}

	if err := s.bloomRepo.Add(ctx, p.ID); err != nil {
		logrus.Warnf("failed to add post %d to bloom filter: %v", p.ID, err)
	}
	return nil
}

// InitBloomFilter loads every existing post ID into the bloom filter.
func (s *Service) InitBloomFilter(ctx context.Context) error {
	var cursor int64
	for {
		ids, err := s.postRepo.FetchIDs(ctx, cursor, bloomInitBatch)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		cursor = ids[len(ids)-1]
	}
}
