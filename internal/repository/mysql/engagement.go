package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
	"github.com/Guyuepp/Go-Clean-Architecture-Feed/internal/repository/mysql/model"
)

type engagementRepository struct {
	DB *gorm.DB
}

var _ domain.EngagementRepository = (*engagementRepository)(nil)

// NewEngagementRepository 创建点赞/关注边表的数据库操作层
func NewEngagementRepository(db *gorm.DB) *engagementRepository {
	return &engagementRepository{db}
}

// ToggleLike flips the (uid, pid) like edge inside one transaction:
// delete first, insert only when nothing was deleted. The unique key on
// (user_id, post_id) guards the insert against a concurrent toggle, so a
// double-submit can surface ErrConflict but never a duplicate edge.
func (m *engagementRepository) ToggleLike(ctx context.Context, uid, pid int64) (added bool, err error) {
	err = m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", uid, pid).Delete(&model.UserLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			added = false
			return nil
		}

		like := model.UserLike{UserID: uid, PostID: pid, CreatedAt: time.Now()}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrConflict
			}
			return err
		}
		added = true
		return nil
	})
	return added, err
}

// ToggleFollow is ToggleLike on the follows table.
func (m *engagementRepository) ToggleFollow(ctx context.Context, followerID, followeeID int64) (added bool, err error) {
	err = m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Delete(&model.Follow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			added = false
			return nil
		}

		follow := model.Follow{FollowerID: followerID, FolloweeID: followeeID, CreatedAt: time.Now()}
		if err := tx.Create(&follow).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrConflict
			}
			return err
		}
		added = true
		return nil
	})
	return added, err
}

func (m *engagementRepository) GetProfileCounts(ctx context.Context, uid int64) (followers, follows, posts int64, err error) {
	db := m.DB.WithContext(ctx)

	if err = db.Model(&model.Follow{}).Where("followee_id = ?", uid).Count(&followers).Error; err != nil {
		return
	}
	if err = db.Model(&model.Follow{}).Where("follower_id = ?", uid).Count(&follows).Error; err != nil {
		return
	}
	err = db.Model(&model.Post{}).Where("user_id = ?", uid).Count(&posts).Error
	return
}

func (m *engagementRepository) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}
