package upload

import (
	"commerce-admin-svc/src/internal/config"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type Handler interface {
	UploadImage(c *gin.Context)
	DeleteImage(c *gin.Context)
}

type handler struct {
	cfg *config.UploadConfig
}

func NewHandler(cfg *config.Configuration) Handler {
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		logrus.WithError(err).WithField("dir", cfg.Upload.Dir).Error("Failed to create upload directory")
	}
	return &handler{cfg: &cfg.Upload}
}

func (h *handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "File is required", err.Error())
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		h.sendErrorResponse(c, http.StatusBadRequest, "File type not allowed", "Only JPG, JPEG, PNG are allowed")
		return
	}

	if file.Size > h.cfg.MaxSizeBytes {
		h.sendErrorResponse(c, http.StatusBadRequest, "File too large", "Maximum size is 5MB")
		return
	}

	filename := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	path := filepath.Join(h.cfg.Dir, filename)

	if err := c.SaveUploadedFile(file, path); err != nil {
		logrus.WithError(err).WithField("path", path).Error("Failed to save uploaded file")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Error saving file", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "Image uploaded successfully",
		"imageUrl":         "/" + h.cfg.Dir + "/" + filename,
		"filename":         filename,
		"originalFilename": file.Filename,
		"fileSize":         file.Size,
		"uploadedAt":       time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handler) DeleteImage(c *gin.Context) {
	imageURL := c.Query("imageUrl")
	if imageURL == "" {
		h.sendErrorResponse(c, http.StatusBadRequest, "imageUrl is required", "Provide the image URL to delete")
		return
	}

	// Only the basename is used, so a crafted URL cannot escape the
	// upload directory.
	filename := filepath.Base(imageURL)
	path := filepath.Join(h.cfg.Dir, filename)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		h.sendErrorResponse(c, http.StatusNotFound, "Image not found", "No image found for the provided URL")
		return
	}

	if err := os.Remove(path); err != nil {
		logrus.WithError(err).WithField("path", path).Error("Failed to delete image")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Error deleting image", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Image deleted successfully",
		"deletedImage": filename,
	})
}

func (h *handler) sendErrorResponse(c *gin.Context, statusCode int, error, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   error,
		"message": message,
	})
}
