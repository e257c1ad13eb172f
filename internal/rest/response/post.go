package response

import (
	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

const DateTimeFormat = "2006-01-02 15:04:05"

type Post struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	CreatedAt string `json:"created_at"`
	LikeCount int64  `json:"like_count"`
	LikedByMe bool   `json:"liked_by_me"`
}

// NewPostFromDomain: Domain -> Response
func NewPostFromDomain(p *domain.Post) Post {
	return Post{
		ID:        p.ID,
		Content:   p.Content,
		UserID:    p.User.ID,
		UserName:  p.User.Name,
		CreatedAt: p.CreatedAt.Format(DateTimeFormat),
		LikeCount: p.LikeCount,
		LikedByMe: p.LikedByMe,
	}
}
