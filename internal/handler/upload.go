package handler

import (
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/upload"
	"github.com/gin-gonic/gin"
)

// allowed upload folders, matching the entity kinds that carry image refs
var uploadFolders = map[string]bool{
	"users":      true,
	"workspaces": true,
	"tasks":      true,
	"messages":   true,
}

type UploadHandler struct {
	uploader upload.Uploader
}

func NewUploadHandler(uploader upload.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// POST /uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	folder := c.DefaultPostForm("folder", "users")
	if !uploadFolders[folder] {
		BadRequest(c, 40001, "unknown upload folder")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, 40001, "missing file: "+err.Error())
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer f.Close()

	ref, err := h.uploader.Upload(c.Request.Context(), folder, fileHeader.Filename, f)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"url": ref})
}
