package user

import (
	"commerce-admin-svc/src/internal/config"
	"commerce-admin-svc/src/internal/middleware"
	"commerce-admin-svc/src/internal/models"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Stats(c *gin.Context)
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

func (h *handler) Create(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	user, err := h.service.Create(ctx, &req, middleware.ActorFromContext(c))
	if err != nil {
		if errors.Is(err, models.ErrDuplicateRecord) {
			h.sendErrorResponse(c, http.StatusBadRequest, "Email already registered", "A user with this email already exists")
			return
		}
		logrus.WithError(err).Error("Failed to create user")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
		"message": "User created successfully",
	})
}

func (h *handler) List(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	skip := parseInt64Param(c, "skip", 0)
	limit := parseInt64Param(c, "limit", int64(h.config.Search.DefaultQueryLimit))

	users, err := h.service.List(ctx, skip, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to list users")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve users", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
		"message": "Users retrieved successfully",
	})
}

func (h *handler) Get(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		h.sendErrorResponse(c, http.StatusNotFound, "User not found", "No user found with the provided ID")
		return
	}

	user, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			h.sendErrorResponse(c, http.StatusNotFound, "User not found", "No user found with the provided ID")
			return
		}
		logrus.WithError(err).WithField("user_id", id.Hex()).Error("Failed to get user")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve user", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
		"message": "User retrieved successfully",
	})
}

func (h *handler) Update(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		h.sendErrorResponse(c, http.StatusNotFound, "User not found", "No user found with the provided ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	user, err := h.service.Update(ctx, id, &req, middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRecordNotFound):
			h.sendErrorResponse(c, http.StatusNotFound, "User not found", "No user found with the provided ID")
		case errors.Is(err, models.ErrInvalidParams):
			h.sendErrorResponse(c, http.StatusBadRequest, "No fields to update", "Provide at least one field to update")
		default:
			logrus.WithError(err).WithField("user_id", id.Hex()).Error("Failed to update user")
			h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to update user", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
		"message": "User updated successfully",
	})
}

func (h *handler) Delete(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		h.sendErrorResponse(c, http.StatusNotFound, "User not found", "No user found with the provided ID")
		return
	}

	if err := h.service.Delete(ctx, id, middleware.ActorFromContext(c)); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			h.sendErrorResponse(c, http.StatusNotFound, "User not found", "No user found with the provided ID")
			return
		}
		logrus.WithError(err).WithField("user_id", id.Hex()).Error("Failed to delete user")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to delete user", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) Stats(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to get user stats")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve user stats", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
		"message": "User stats retrieved successfully",
	})
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}

func (h *handler) sendErrorResponse(c *gin.Context, statusCode int, error, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   error,
		"message": message,
	})
}

func parseInt64Param(c *gin.Context, param string, defaultValue int64) int64 {
	value := c.Query(param)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"param": param,
			"value": value,
			"error": err,
		}).Warn("Invalid integer parameter, using default")

		return defaultValue
	}
	return parsed
}
