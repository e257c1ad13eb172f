package model

import (
	"time"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Content   string    `gorm:"type:text;not null"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	CreatedAt time.Time `gorm:"type:datetime(6);index:idx_post_feed,priority:1"`

	// Aggregates filled by the feed query, not columns of the post table.
	LikeCount int64 `gorm:"->;-:migration"`
	LikedByMe bool  `gorm:"->;-:migration"`
}

func (Post) TableName() string {
	return "post"
}

func (m *Post) ToDomain() domain.Post {
	return domain.Post{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		User: domain.User{
			ID: m.UserID,
		},
		LikeCount: m.LikeCount,
		LikedByMe: m.LikedByMe,
	}
}

func NewPostFromDomain(p *domain.Post) *Post {
	return &Post{
		ID:        p.ID,
		Content:   p.Content,
		UserID:    p.User.ID,
		CreatedAt: p.CreatedAt,
	}
}
