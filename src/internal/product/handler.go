package product

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
	Top(c *gin.Context)
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

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	product, err := h.service.Create(ctx, &req, middleware.ActorFromContext(c))
	if err != nil {
		logrus.WithError(err).Error("Failed to create product")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to create product", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
		"message": "Product created successfully",
	})
}

func (h *handler) List(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	skip := parseInt64Param(c, "skip", 0)
	limit := parseInt64Param(c, "limit", int64(h.config.Search.DefaultQueryLimit))
	category := c.Query("category")

	products, err := h.service.List(ctx, category, skip, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to list products")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve products", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
		"message": "Products retrieved successfully",
	})
}

func (h *handler) Get(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		h.sendErrorResponse(c, http.StatusNotFound, "Product not found", "No product found with the provided ID")
		return
	}

	product, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			h.sendErrorResponse(c, http.StatusNotFound, "Product not found", "No product found with the provided ID")
			return
		}
		logrus.WithError(err).WithField("product_id", id.Hex()).Error("Failed to get product")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve product", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
		"message": "Product retrieved successfully",
	})
}

func (h *handler) Top(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	by := c.Query("by")
	limit := parseInt64Param(c, "limit", defaultTopProductsLimit)

	products, err := h.service.Top(ctx, by, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to get top products")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve top products", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
		"message": "Top products retrieved successfully",
	})
}

func (h *handler) Update(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		h.sendErrorResponse(c, http.StatusNotFound, "Product not found", "No product found with the provided ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	product, err := h.service.Update(ctx, id, &req, middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRecordNotFound):
			h.sendErrorResponse(c, http.StatusNotFound, "Product not found", "No product found with the provided ID")
		case errors.Is(err, models.ErrInvalidParams):
			h.sendErrorResponse(c, http.StatusBadRequest, "No fields to update", "Provide at least one field to update")
		default:
			logrus.WithError(err).WithField("product_id", id.Hex()).Error("Failed to update product")
			h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to update product", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
		"message": "Product updated successfully",
	})
}

func (h *handler) Delete(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		h.sendErrorResponse(c, http.StatusNotFound, "Product not found", "No product found with the provided ID")
		return
	}

	if err := h.service.Delete(ctx, id, middleware.ActorFromContext(c)); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			h.sendErrorResponse(c, http.StatusNotFound, "Product not found", "No product found with the provided ID")
			return
		}
		logrus.WithError(err).WithField("product_id", id.Hex()).Error("Failed to delete product")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to delete product", err.Error())
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
