package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxUploadBytes = 8 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func saveUploadedImage(c *gin.Context, field, uploadDir, subdir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("%s file is required", field)
	}
	if file.Size > maxUploadBytes {
		return "", fmt.Errorf("file exceeds %d bytes", maxUploadBytes)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	// Server-side name: the client's filename never touches the filesystem.
	name := uuid.NewString() + ext
	targetDir := filepath.Join(uploadDir, subdir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(file, filepath.Join(targetDir, name)); err != nil {
		return "", err
	}

	return path.Join("/uploads", subdir, name), nil
}

// UploadPaymentProof stores a customer's payment screenshot and returns the
// relative URL the submission then carries as an opaque attachment.
func UploadPaymentProof(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /uploads/payment-proof"
		defer handlePanic(c, route)

		url, err := saveUploadedImage(c, "file", uploadDir, "payment-proofs")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		log.Info().Str("url", url).Msg("payment proof stored")
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}

// UploadProductImage stores an admin-uploaded catalog image.
func UploadProductImage(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/uploads/product-image"
		defer handlePanic(c, route)

		url, err := saveUploadedImage(c, "file", uploadDir, "products")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}
