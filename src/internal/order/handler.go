package order

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

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	order, err := h.service.Create(ctx, &req, middleware.ActorFromContext(c))
	if err != nil {
		if errors.Is(err, models.ErrInvalidReference) {
			h.sendErrorResponse(c, http.StatusBadRequest, "Invalid identifier", "User and product ids must be valid identifiers")
			return
		}
		logrus.WithError(err).Error("Failed to create order")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to create order", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
		"message": "Order created successfully",
	})
}

func (h *handler) List(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	skip := parseInt64Param(c, "skip", 0)
	limit := parseInt64Param(c, "limit", int64(h.config.Search.DefaultQueryLimit))

	userID, err := models.ParseOptionalID(c.Query("userId"))
	if err != nil {
		// A malformed filter matches nothing.
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    []*Order{},
			"message": "Orders retrieved successfully",
		})
		return
	}

	orders, err := h.service.List(ctx, userID, skip, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to list orders")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve orders", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"message": "Orders retrieved successfully",
	})
}

func (h *handler) Get(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		h.sendErrorResponse(c, http.StatusNotFound, "Order not found", "No order found with the provided ID")
		return
	}

	order, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			h.sendErrorResponse(c, http.StatusNotFound, "Order not found", "No order found with the provided ID")
			return
		}
		logrus.WithError(err).WithField("order_id", id.Hex()).Error("Failed to get order")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve order", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
		"message": "Order retrieved successfully",
	})
}

func (h *handler) Update(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		h.sendErrorResponse(c, http.StatusNotFound, "Order not found", "No order found with the provided ID")
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	order, err := h.service.Update(ctx, id, &req, middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRecordNotFound):
			h.sendErrorResponse(c, http.StatusNotFound, "Order not found", "No order found with the provided ID")
		case errors.Is(err, models.ErrInvalidParams):
			h.sendErrorResponse(c, http.StatusBadRequest, "No fields to update", "Provide at least one field to update")
		default:
			logrus.WithError(err).WithField("order_id", id.Hex()).Error("Failed to update order")
			h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to update order", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
		"message": "Order updated successfully",
	})
}

func (h *handler) Delete(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		h.sendErrorResponse(c, http.StatusNotFound, "Order not found", "No order found with the provided ID")
		return
	}

	if err := h.service.Delete(ctx, id, middleware.ActorFromContext(c)); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			h.sendErrorResponse(c, http.StatusNotFound, "Order not found", "No order found with the provided ID")
			return
		}
		logrus.WithError(err).WithField("order_id", id.Hex()).Error("Failed to delete order")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to delete order", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
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
