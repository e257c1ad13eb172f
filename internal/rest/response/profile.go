package response

import "github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

func NewUserFromDomain(u *domain.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
	}
}

type Profile struct {
	User           *User `json:"user"`
	FollowersCount int64 `json:"followers_count"`
	FollowsCount   int64 `json:"follows_count"`
	PostsCount     int64 `json:"posts_count"`
	IsFollowing    bool  `json:"is_following"`
}

// NewProfileFromDomain: Domain -> Response
func NewProfileFromDomain(p *domain.Profile) Profile {
	return Profile{
		User:           NewUserFromDomain(&p.User),
		FollowersCount: p.FollowersCount,
		FollowsCount:   p.FollowsCount,
		PostsCount:     p.PostsCount,
		IsFollowing:    p.IsFollowing,
	}
}
