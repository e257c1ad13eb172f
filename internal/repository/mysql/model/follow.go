package model

import (
	"time"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

type Follow struct {
	FollowerID int64     `gorm:"column:follower_id;not null;uniqueIndex:uniq_follow,priority:1"`
	FolloweeID int64     `gorm:"column:followee_id;not null;uniqueIndex:uniq_follow,priority:2"`
	CreatedAt  time.Time `gorm:"type:datetime(6)"`
}

func (Follow) TableName() string {
	return "follows"
}

func NewFollowFromDomain(f domain.Follow) Follow {
	return Follow{
		FollowerID: f.FollowerID,
		FolloweeID: f.FolloweeID,
		CreatedAt:  f.CreatedAt,
	}
}
