package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
	"github.com/Guyuepp/Go-Clean-Architecture-Feed/internal/rest/response"
)

type engagementHandler struct {
	Service domain.EngagementUsecase
}

func NewEngagementHandler(svc domain.EngagementUsecase) *engagementHandler {
	return &engagementHandler{
		Service: svc,
	}
}

// ToggleLike flips the actor's like on a post and reports which action
// happened.
func (h *engagementHandler) ToggleLike(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	pid := int64(idP)

	uid := actorID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	added, err := h.Service.ToggleLike(c.Request.Context(), uid, pid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": added})
}

// ToggleFollow flips the actor's follow on an author and reports which
// action happened.
func (h *engagementHandler) ToggleFollow(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	followeeID := int64(idP)

	uid := actorID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	added, err := h.Service.ToggleFollow(c.Request.Context(), uid, followeeID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": added})
}

// GetProfile serves the profile summary as seen by the current actor.
func (h *engagementHandler) GetProfile(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	uid := int64(idP)

	profile, err := h.Service.GetProfile(c.Request.Context(), actorID(c), uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewProfileFromDomain(&profile))
}
