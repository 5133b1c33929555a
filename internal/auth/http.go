package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the login and registration endpoints.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
}

type httpHandler struct {
	service *Service
}

type credentialsRequest struct {
	Account  string `json:"account" binding:"required,max=128"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type accountResponse struct {
	ID        string    `json:"id"`
	Account   string    `json:"account"`
	CreatedAt time.Time `json:"created_at"`
}

func marshalAccount(acc Account) accountResponse {
	return accountResponse{
		ID:        acc.ID.String(),
		Account:   acc.Account,
		CreatedAt: acc.CreatedAt.UTC(),
	}
}

func (h *httpHandler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	acc, err := h.service.Register(c.Request.Context(), Credentials{
		Account:  req.Account,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAccountExists):
			c.JSON(http.StatusConflict, gin.H{"message": "account already exists"})
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to register account"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "account created",
		"user":    marshalAccount(acc.SafeAccount()),
	})
}

func (h *httpHandler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result, err := h.service.Login(c.Request.Context(), Credentials{
		Account:  req.Account,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAccountNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "account does not exist"})
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "wrong account or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to authenticate"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"user":    marshalAccount(result.Account.SafeAccount()),
		"token":   result.Token,
		"expires": result.Expiry.Unix(),
	})
}
