package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"doctorsmile/services/enhance"
	"doctorsmile/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EnhanceHandler serves the smile-photo enhancement endpoint.
type EnhanceHandler struct {
	Enhancer enhance.Enhancer
	// Storage hosts the pair when configured; otherwise data URIs are
	// returned inline.
	Storage storage.StorageService
	Logger  *zap.Logger
}

func NewEnhanceHandler(enhancer enhance.Enhancer, store storage.StorageService, logger *zap.Logger) *EnhanceHandler {
	return &EnhanceHandler{Enhancer: enhancer, Storage: store, Logger: logger}
}

// ProcessSmilePhoto accepts a multipart photo plus JSON options and returns
// the before/after pair.
func (h *EnhanceHandler) ProcessSmilePhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No photo provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process photo"})
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process photo"})
		return
	}

	var opts enhance.Options
	if raw := c.PostForm("options"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts); err != nil {
			h.Logger.Warn("ignoring malformed enhancement options", zap.Error(err))
		}
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	pair, err := h.Enhancer.Enhance(c.Request.Context(), photo, mimeType, opts)
	if err != nil {
		h.Logger.Error("photo enhancement failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process photo"})
		return
	}

	if h.Storage != nil {
		if hosted, err := h.Storage.UploadImage(c.Request.Context(), photo, "smiles/before"); err == nil {
			pair.Before = hosted
		} else {
			h.Logger.Warn("before-image upload failed, keeping data URI", zap.Error(err))
		}
		if after, ok := decodeDataURI(pair.After); ok {
			if hosted, err := h.Storage.UploadImage(c.Request.Context(), after, "smiles/after"); err == nil {
				pair.After = hosted
			} else {
				h.Logger.Warn("after-image upload failed, keeping data URI", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"beforeImage": pair.Before,
		"afterImage":  pair.After,
		"message":     "Photo processed successfully",
	})
}

// decodeDataURI extracts the raw bytes from an inline data URI. Hosted URLs
// return false.
func decodeDataURI(uri string) ([]byte, bool) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, false
	}
	_, b64, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, false
	}
	return data, true
}
