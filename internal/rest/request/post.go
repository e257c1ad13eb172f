package request

import "github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"

type Post struct {
	Content string `json:"content" binding:"required,max=280"`
}

// ToDomain: Request -> Domain
func (r *Post) ToDomain() domain.Post {
	return domain.Post{
		Content: r.Content,
	}
}

type Register struct {
	Name     string `json:"name" binding:"required,max=45"`
	Username string `json:"username" binding:"required,max=45,username"`
	Password string `json:"password" binding:"required,min=6"`
}

type Login struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
