package qrcontroller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var unsafeFileChars = regexp.MustCompile(`[^\w\-.]`)

// HandleQRFileUpload stores the payment QR image and records its public URL.
// The newest upload is the one customers see.
func HandleQRFileUpload(store Store, uploadDir, publicBaseURL string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		cleanName := unsafeFileChars.ReplaceAllString(filepath.Base(file.Filename), "_")
		filename := fmt.Sprintf("%d_%s", time.Now().Unix(), cleanName)

		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			log.Error("creating upload folder", zap.String("dir", uploadDir), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		savePath := filepath.Join(uploadDir, filename)
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			log.Error("saving qr file", zap.String("path", savePath), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}

		fileURL := fmt.Sprintf("%s/uploads/%s", publicBaseURL, filename)
		record, err := store.Save(c.Request.Context(), filename, fileURL)
		if err != nil {
			_ = os.Remove(savePath)
			log.Error("recording qr file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record QR file"})
			return
		}

		log.Info("qr file uploaded", zap.String("original", file.Filename), zap.String("url", fileURL))
		c.JSON(http.StatusOK, gin.H{
			"file":     record,
			"file_url": fileURL,
			"message":  "File uploaded successfully",
		})
	}
}

// GET /admin/qr
func ListQRFilesHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		files, err := store.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch QR files"})
			return
		}
		c.JSON(http.StatusOK, files)
	}
}

// PaymentQRURL resolves the QR reference for the online payment step: the
// newest upload, else fallback.
func PaymentQRURL(store Store, fallback string) func(ctx context.Context) string {
	return func(ctx context.Context) string {
		file, err := store.Latest(ctx)
		if err != nil {
			return fallback
		}
		return file.FileURL
	}
}

// GET /payment/qr
func GetPaymentQRHandler(resolve func(ctx context.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		url := resolve(c.Request.Context())
		if url == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "No payment QR configured"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"payment_qr_url": url})
	}
}

// DELETE /admin/qr/:id
func DeleteQRFileHandler(store Store, uploadDir string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
			return
		}

		qrFile, err := store.Get(c.Request.Context(), id)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "QR file not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query QR file"})
			return
		}

		filePath := filepath.Join(uploadDir, qrFile.FileName)
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file from disk"})
			return
		}

		if err := store.Delete(c.Request.Context(), qrFile); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete QR file record"})
			return
		}

		log.Info("qr file deleted", zap.String("file", qrFile.FileName))
		c.JSON(http.StatusOK, gin.H{"message": "QR file deleted successfully"})
	}
}
