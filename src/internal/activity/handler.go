package activity

import (
	"commerce-admin-svc/src/internal/cache"
	"commerce-admin-svc/src/internal/config"
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
	List(c *gin.Context)
	GetByID(c *gin.Context)
	ListByUser(c *gin.Context)
	ListByResource(c *gin.Context)
	TopActivities(c *gin.Context)
}

type handler struct {
	config       *config.Configuration
	service      Service
	cacheService cache.Service
}

func NewHandler(cfg *config.Configuration, service Service, cacheService cache.Service) Handler {
	return &handler{
		config:       cfg,
		service:      service,
		cacheService: cacheService,
	}
}

func (h *handler) List(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	skip := parseInt64Param(c, "skip", 0)
	limit := parseInt64Param(c, "limit", int64(h.config.Search.DefaultQueryLimit))

	entries, err := h.service.List(ctx, skip, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to list activity logs")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve activity logs", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"message": "Activity logs retrieved successfully",
	})
}

func (h *handler) GetByID(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	// A malformed id cannot reference any entry, so it reads as not found
	// rather than a server error.
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		h.sendErrorResponse(c, http.StatusNotFound, "Activity log not found", "No activity log found with the provided ID")
		return
	}

	entry, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			h.sendErrorResponse(c, http.StatusNotFound, "Activity log not found", "No activity log found with the provided ID")
			return
		}
		logrus.WithError(err).WithField("log_id", id.Hex()).Error("Failed to get activity log")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve activity log", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entry,
		"message": "Activity log retrieved successfully",
	})
}

func (h *handler) ListByUser(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	skip := parseInt64Param(c, "skip", 0)
	limit := parseInt64Param(c, "limit", int64(h.config.Search.DefaultQueryLimit))

	actorID, err := models.ParseID(c.Param("userId"))
	if err != nil {
		// Malformed references match nothing; this is an empty result,
		// not an error.
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    []*Entry{},
			"message": "Activity logs retrieved successfully",
		})
		return
	}

	entries, err := h.service.ListByActor(ctx, actorID, skip, limit)
	if err != nil {
		logrus.WithError(err).WithField("user_id", actorID.Hex()).Error("Failed to list activity logs by user")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve activity logs", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"message": "Activity logs retrieved successfully",
	})
}

func (h *handler) ListByResource(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	skip := parseInt64Param(c, "skip", 0)
	limit := parseInt64Param(c, "limit", int64(h.config.Search.DefaultQueryLimit))

	resource := c.Param("resource")
	resourceID, err := models.ParseID(c.Param("resourceId"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    []*Entry{},
			"message": "Activity logs retrieved successfully",
		})
		return
	}

	entries, err := h.service.ListByResource(ctx, resource, resourceID, skip, limit)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"resource":    resource,
			"resource_id": resourceID.Hex(),
		}).Error("Failed to list activity logs by resource")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve activity logs", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"message": "Activity logs retrieved successfully",
	})
}

func (h *handler) TopActivities(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	limit := parseInt64Param(c, "limit", defaultTopActionsLimit)

	cached, err := h.cacheService.GetTopActivities(ctx, limit)
	if err == nil && cached != nil {
		logrus.Debug("Top activities retrieved from cache")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    cached,
			"message": "Top activities retrieved successfully (from cache)",
		})
		return
	}

	activities, err := h.service.TopActions(ctx, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to get top activities")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve top activities", err.Error())
		return
	}

	h.cacheService.SaveTopActivities(ctx, limit, activities)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    activities,
		"message": "Top activities retrieved successfully",
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
