package auth

import (
	"commerce-admin-svc/src/internal/config"
	"commerce-admin-svc/src/internal/models"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type Handler interface {
	Login(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
}

func NewHandler(cfg *config.Configuration, service Service) Handler {
	return &handler{
		config:  cfg,
		service: service,
	}
}

func (h *handler) Login(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	token, u, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid credentials",
				"message": "Email or password is incorrect",
			})
			return
		}
		logrus.WithError(err).Error("Login failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Login failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":       u.ID.Hex(),
			"email":    u.Email,
			"fullName": u.FullName,
			"role":     u.Role,
		},
		"message": "Login successful",
	})
}
