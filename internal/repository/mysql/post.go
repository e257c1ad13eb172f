package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
	"github.com/Guyuepp/Go-Clean-Architecture-Feed/internal/repository"
	"github.com/Guyuepp/Go-Clean-Architecture-Feed/internal/repository/mysql/model"
)

type postRepository struct {
	DB *gorm.DB
}

// mysql层只负责数据库操作
var _ domain.PostDBRepository = (*postRepository)(nil)

// NewPostDBRepository 创建数据库操作层
func NewPostDBRepository(db *gorm.DB) *postRepository {
	return &postRepository{db}
}

// FetchPage runs the keyset feed query. The (created_at, id) descending
// order is total, so a page boundary never skips or repeats posts even
// when timestamps collide. LikeCount and LikedByMe come from correlated
// subqueries in the same pass; actor id 0 matches no like rows, which
// yields LikedByMe = false for unauthenticated requests.
func (m *postRepository) FetchPage(ctx context.Context, filter domain.FeedFilter, cursor string, num int64) ([]domain.Post, error) {
	query := m.DB.WithContext(ctx).
		Model(&model.Post{}).
		Select(`post.*,
			(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = post.id) AS like_count,
			EXISTS(SELECT 1 FROM post_likes WHERE post_likes.post_id = post.id AND post_likes.user_id = ?) AS liked_by_me`,
			filter.ActorID)

	switch filter.Kind {
	case domain.FilterByAuthor:
		query = query.Where("post.user_id = ?", filter.AuthorID)
	case domain.FilterFollowing:
		query = query.Where("post.user_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)", filter.ActorID)
	}

	if cursor != "" {
		boundaryAt, boundaryID, err := repository.DecodeCursor(cursor)
		if err != nil {
			return nil, domain.ErrBadParamInput
		}
		query = query.Where("post.created_at < ? OR (post.created_at = ? AND post.id < ?)",
			boundaryAt, boundaryAt, boundaryID)
	}

	var posts []model.Post
	err := query.
		Order("post.created_at DESC, post.id DESC").
		Limit(int(num)).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Post, len(posts))
	for i := range posts {
		res[i] = posts[i].ToDomain()
	}
	return res, nil
}

func (m *postRepository) GetByID(ctx context.Context, id int64) (res domain.Post, err error) {
	var post model.Post
	err = m.DB.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		return res, domain.ErrNotFound
	}
	res = post.ToDomain()
	return
}

func (m *postRepository) Store(ctx context.Context, p *domain.Post) (err error) {
	postModel := model.NewPostFromDomain(p)
	result := m.DB.WithContext(ctx).Create(&postModel)
	if result.Error != nil {
		return result.Error
	}
	p.ID = postModel.ID
	p.CreatedAt = postModel.CreatedAt
	return
}

func (m *postRepository) Delete(ctx context.Context, id int64) error {
	result := m.DB.WithContext(ctx).Delete(&model.Post{}, id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (m *postRepository) LikedPostIDs(ctx context.Context, uid int64, postIDs []int64) (map[int64]bool, error) {
	if len(postIDs) == 0 {
		return map[int64]bool{}, nil
	}

	var liked []int64
	err := m.DB.WithContext(ctx).
		Model(&model.UserLike{}).
		Select("post_id").
		Where("user_id = ? AND post_id IN ?", uid, postIDs).
		Find(&liked).Error
	if err != nil {
		return nil, err
	}

	res := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		res[id] = false
	}
	for _, id := range liked {
		res[id] = true
	}
	return res, nil
}

// FetchUserLikedPosts 从 post_likes 表中按 post_id DESC 排序选择 user_id=? 的记录，限制条数
func (m *postRepository) FetchUserLikedPosts(ctx context.Context, uid int64, limit int64) ([]int64, error) {
	var res []int64
	err := m.DB.WithContext(ctx).
		Model(&model.UserLike{}).
		Select("post_id").
		Where("user_id = ?", uid).
		Order("post_id desc").
		Limit(int(limit)).
		Find(&res).Error

	return res, err
}

func (m *postRepository) FetchIDs(ctx context.Context, cursor, limit int64) (ids []int64, err error) {
	err = m.DB.WithContext(ctx).
		Model(&model.Post{}).
		Select("id").
		Where("id > ?", cursor).
		Order("id").
		Limit(int(limit)).
		Find(&ids).Error
	return
}
