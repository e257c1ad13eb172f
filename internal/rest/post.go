package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
	"github.com/Guyuepp/Go-Clean-Architecture-Feed/internal/rest/request"
	"github.com/Guyuepp/Go-Clean-Architecture-Feed/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// PostHandler represent the httphandler for the feed
type PostHandler struct {
	Service domain.FeedUsecase
}

const (
	DefaultPageNum = 10
	PageMinNum     = 1
	PageMaxNum     = 50
)

func NewPostHandler(svc domain.FeedUsecase) *PostHandler {
	return &PostHandler{
		Service: svc,
	}
}

// FetchFeed serves the home feed: all posts, or only followed authors
// when only_following is set and the request is authenticated.
func (h *PostHandler) FetchFeed(c *gin.Context) {
	filter := domain.FeedFilter{Kind: domain.FilterAll, ActorID: actorID(c)}
	if c.Query("only_following") == "true" {
		filter.Kind = domain.FilterFollowing
	}

	h.fetchPage(c, filter)
}

// FetchByAuthor serves one author's posts.
func (h *PostHandler) FetchByAuthor(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	filter := domain.FeedFilter{
		Kind:     domain.FilterByAuthor,
		ActorID:  actorID(c),
		AuthorID: int64(idP),
	}
	h.fetchPage(c, filter)
}

func (h *PostHandler) fetchPage(c *gin.Context, filter domain.FeedFilter) {
	numS := c.Query("num")
	num, err := strconv.Atoi(numS)
	if err != nil || num < PageMinNum || num > PageMaxNum {
		num = DefaultPageNum
	}

	cursor := c.Query("cursor")
	ctx := c.Request.Context()

	page, err := h.Service.FetchPage(ctx, filter, int64(num), cursor)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Post, len(page.Posts))
	for i := range page.Posts {
		res[i] = response.NewPostFromDomain(&page.Posts[i])
	}
	c.Header(`X-cursor`, page.NextCursor)
	c.JSON(http.StatusOK, res)
}

// Store will store the post by given request body
func (h *PostHandler) Store(c *gin.Context) {
	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := actorID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	post := req.ToDomain()
	post.User.ID = uid

	ctx := c.Request.Context()
	if err := h.Service.Store(ctx, &post); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewPostFromDomain(&post))
}

// actorID reads the authenticated user from the gin context, 0 when the
// request is unauthenticated.
func actorID(c *gin.Context) int64 {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	uid, ok := userID.(int64)
	if !ok {
		return 0
	}
	return uid
}

// getStatusCode will get the code of the error from the usecases
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch err {
	case domain.ErrInternalServerError:
		return http.StatusInternalServerError
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrBadParamInput:
		return http.StatusBadRequest
	case domain.ErrUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
