package userinfo

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts user-info CRUD under /userInfo.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	infoGroup := group.Group("/userInfo")
	{
		infoGroup.GET("/getAllUserInfo", handler.listAll)
		infoGroup.POST("/new", handler.create)
		infoGroup.POST("/edit", handler.update)
		infoGroup.POST("/delete", handler.remove)
	}
}

type httpHandler struct {
	service *Service
}

type upsertRequest struct {
	ID        string   `json:"id"`
	Name      string   `json:"name" binding:"required,max=128"`
	Age       int      `json:"age" binding:"gte=0,lte=200"`
	Interests []string `json:"interests"`
}

type deleteRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *httpHandler) listAll(c *gin.Context) {
	infos, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list users"})
		return
	}
	if infos == nil {
		infos = []UserInfo{}
	}
	c.JSON(http.StatusOK, infos)
}

func (h *httpHandler) create(c *gin.Context) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	info, err := h.service.Create(c.Request.Context(), Input{
		Name:      req.Name,
		Age:       req.Age,
		Interests: req.Interests,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user created", "user": info})
}

func (h *httpHandler) update(c *gin.Context) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}

	info, err := h.service.Update(c.Request.Context(), id, Input{
		Name:      req.Name,
		Age:       req.Age,
		Interests: req.Interests,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated", "user": info})
}

func (h *httpHandler) remove(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
