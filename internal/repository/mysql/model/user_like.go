package model

import (
	"time"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

type UserLike struct {
	PostID    int64     `gorm:"column:post_id;not null;uniqueIndex:uniq_user_post,priority:2"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uniq_user_post,priority:1"`
	CreatedAt time.Time `gorm:"type:datetime(6)"`
}

func (UserLike) TableName() string {
	return "post_likes"
}

func NewUserLikeFromDomain(ul domain.UserLike) UserLike {
	return UserLike{
		PostID:    ul.PostID,
		UserID:    ul.UserID,
		CreatedAt: ul.CreatedAt,
	}
}
