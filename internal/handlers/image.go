package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/config"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/s3"
	"go.uber.org/zap"
)

// maxImageSize is the largest accepted upload.
const maxImageSize = 10 << 20

// ImageUploadFunc stores image bytes under key and returns their public URL.
type ImageUploadFunc func(ctx context.Context, cfg *config.Config, imgBytes []byte, key, contentType string) (string, error)

// ImageHandler handles admin image upload requests.
type ImageHandler struct {
	Cfg    *config.Config
	Upload ImageUploadFunc
}

// NewImageHandler creates a new ImageHandler that uploads to S3.
func NewImageHandler(cfg *config.Config) *ImageHandler {
	return &ImageHandler{
		Cfg:    cfg,
		Upload: s3.UploadImage,
	}
}

// allowedImageTypes maps accepted file extensions to their content type.
var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadImage handles POST /v1/admin/images
func (h *ImageHandler) UploadImage(c *gin.Context) {
	if h.Cfg == nil || !h.Cfg.ImageUploadsEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	defer file.Close()

	// Validate file extension
	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type. Allowed: jpg, png, webp"})
		return
	}

	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds maximum size of 10MB"})
		return
	}

	imgBytes, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	if len(imgBytes) > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds maximum size of 10MB"})
		return
	}

	key := s3.GenerateImageKey(ext)
	imageURL, err := h.Upload(c.Request.Context(), h.Cfg, imgBytes, key, contentType)
	if err != nil {
		logger.FromGin(c).Error("failed to upload image to S3", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
}
