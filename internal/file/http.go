package file

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts file operations under the provided router group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/upload", handler.upload)
	group.POST("/upload-batch", handler.uploadBatch)
	group.GET("/list", handler.list)
	group.GET("/download/:identifier", handler.download)
	group.DELETE("/delete/:identifier", handler.remove)
}

type httpHandler struct {
	service *Service
}

type fileResponse struct {
	SerialNumber int64     `json:"serialNumber"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	Path         string    `json:"path"`
	MimeType     string    `json:"mimeType"`
	UploadTime   time.Time `json:"uploadTime"`
}

func marshalRecord(rec Record) fileResponse {
	return fileResponse{
		SerialNumber: rec.SerialNumber,
		Name:         rec.FileName,
		Size:         rec.SizeBytes,
		Path:         rec.FilePath,
		MimeType:     rec.MimeType,
		UploadTime:   rec.UploadTime,
	}
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func (h *httpHandler) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "no file uploaded")
		return
	}

	rec, err := h.service.Upload(c.Request.Context(), fh)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFile):
			fail(c, http.StatusBadRequest, "no file uploaded")
		case errors.Is(err, ErrFileTooLarge):
			fail(c, http.StatusBadRequest, "file too large")
		default:
			fail(c, http.StatusInternalServerError, "file upload failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "file uploaded successfully",
		"file":    marshalRecord(rec),
	})
}

func (h *httpHandler) uploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, "no files uploaded")
		return
	}

	fhs := form.File["files"]
	stored, failures, err := h.service.UploadBatch(c.Request.Context(), fhs)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFile):
			fail(c, http.StatusBadRequest, "no files uploaded")
		case errors.Is(err, ErrTooManyFiles):
			fail(c, http.StatusBadRequest, "too many files in batch")
		default:
			fail(c, http.StatusInternalServerError, "batch upload failed")
		}
		return
	}

	files := make([]fileResponse, 0, len(stored))
	for _, rec := range stored {
		files = append(files, marshalRecord(rec))
	}

	resp := gin.H{
		"success": len(failures) == 0,
		"message": fmt.Sprintf("uploaded %d of %d files", len(stored), len(fhs)),
		"files":   files,
	}
	if len(failures) > 0 {
		resp["failed"] = failures
	}
	c.JSON(http.StatusOK, resp)
}

func (h *httpHandler) list(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := h.service.List(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list files")
		return
	}

	files := make([]fileResponse, 0, len(result.Records))
	for _, rec := range result.Records {
		files = append(files, marshalRecord(rec))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"files": files,
			"pagination": gin.H{
				"page":       result.PageNumber,
				"pageSize":   result.PageSize,
				"total":      result.Total,
				"totalPages": result.TotalPages,
			},
		},
	})
}

func (h *httpHandler) download(c *gin.Context) {
	id := ParseIdentifier(c.Param("identifier"))

	rec, reader, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrFileNotFound):
			fail(c, http.StatusNotFound, "file not found")
		case errors.Is(err, ErrFileGone):
			fail(c, http.StatusNotFound, "file already deleted")
		default:
			fail(c, http.StatusInternalServerError, "file download failed")
		}
		return
	}
	defer reader.Close()

	c.Header("Content-Type", rec.MimeType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.FileName))
	c.Header("Content-Length", strconv.FormatInt(rec.SizeBytes, 10))

	if _, err := io.Copy(c.Writer, reader); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
}

func (h *httpHandler) remove(c *gin.Context) {
	id := ParseIdentifier(c.Param("identifier"))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrFileNotFound):
			fail(c, http.StatusNotFound, "file not found")
		default:
			fail(c, http.StatusInternalServerError, "file deletion failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "file deleted successfully"})
}
