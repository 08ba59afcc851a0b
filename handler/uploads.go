package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suhaib93102/CLM-Frontend/model"
	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
	"github.com/suhaib93102/CLM-Frontend/service"
)

// MaxUploadBytes caps a single private upload.
const MaxUploadBytes = 25 << 20

var uploadTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
	".txt":  "text/plain",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

type UploadHandler struct {
	*Base
}

func NewUploadHandler(b *Base) *UploadHandler {
	return &UploadHandler{Base: b}
}

type UploadsData struct {
	Uploads    []model.PrivateUpload
	TotalBytes int64
	Accept     string
}

// List shows the user's private uploads.
func (h *UploadHandler) List(c *gin.Context) {
	api := h.client(c)
	resp := api.PrivateUploads(c.Request.Context())
	if failed(h.Base, c, resp, "Failed to load uploads") {
		return
	}

	data := UploadsData{Uploads: service.Items(resp), Accept: acceptList()}
	for _, u := range data.Uploads {
		data.TotalBytes += u.Size
	}
	h.render(c, http.StatusOK, "uploads.html", h.page(c, "Uploads", "uploads", data))
}

// Upload validates the file type and forwards the file to the backend.
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+1<<20)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.redirectError(c, "/uploads", "No file provided")
		return
	}
	defer file.Close()

	if header.Size > MaxUploadBytes {
		h.redirectError(c, "/uploads", "File is larger than 25 MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	expected, ok := uploadTypes[ext]
	if !ok {
		h.redirectError(c, "/uploads", "Unsupported file type")
		return
	}

	// Sniff the first bytes so a renamed executable is not accepted as a PDF.
	if ext == ".pdf" {
		buffer := make([]byte, 512)
		n, err := file.Read(buffer)
		if err != nil && err != io.EOF {
			h.redirectError(c, "/uploads", "Failed to read file")
			return
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			h.redirectError(c, "/uploads", "Failed to read file")
			return
		}
		detected := http.DetectContentType(buffer[:n])
		if !strings.Contains(detected, "pdf") && detected != "application/octet-stream" {
			h.redirectError(c, "/uploads", "Invalid file type")
			return
		}
	}

	api := h.client(c)
	resp := api.UploadPrivate(c.Request.Context(), filepath.Base(header.Filename), file)
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.redirectError(c, "/uploads", "Failed to upload file: "+resp.Error)
		return
	}

	logger.Info(c.Request.Context(), "file uploaded",
		"filename", header.Filename,
		"size", header.Size,
		"content_type", expected,
	)
	h.redirect(c, "/uploads", "Uploaded "+header.Filename)
}

// Open redirects to a short-lived download URL for ?key=.
func (h *UploadHandler) Open(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		h.redirectError(c, "/uploads", "Missing file key")
		return
	}

	api := h.client(c)
	resp := api.PrivateUploadURL(c.Request.Context(), key)
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success || resp.Data.URL == "" {
		h.redirectError(c, "/uploads", "Failed to open file: "+resp.ErrorOr("no download URL"))
		return
	}
	h.persist(c)
	c.Redirect(http.StatusFound, resp.Data.URL)
}

// Delete removes the upload named by the key form field.
func (h *UploadHandler) Delete(c *gin.Context) {
	key := c.PostForm("key")
	if key == "" {
		h.redirectError(c, "/uploads", "Missing file key")
		return
	}

	api := h.client(c)
	resp := api.DeletePrivateUpload(c.Request.Context(), key)
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.redirectError(c, "/uploads", "Failed to delete file: "+resp.Error)
		return
	}
	logger.Info(c.Request.Context(), "upload deleted", "key", key)
	h.redirect(c, "/uploads", "File deleted")
}

func acceptList() string {
	exts := make([]string, 0, len(uploadTypes))
	for ext := range uploadTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ",")
}
