package file

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *fakeRepo, *fakeBlobStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	service := NewService(repo, blobs)

	router := gin.New()
	RegisterRoutes(router.Group("/"), service)
	return router, repo, blobs
}

func multipartBody(t *testing.T, field string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadEndpointReturnsEnvelope(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body, contentType := multipartBody(t, "file", map[string][]byte{"notes.txt": []byte("hello")})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		File    struct {
			SerialNumber int64  `json:"serialNumber"`
			Name         string `json:"name"`
			Size         int64  `json:"size"`
		} `json:"file"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.File.SerialNumber)
	assert.Equal(t, "notes.txt", resp.File.Name)
	assert.Equal(t, int64(5), resp.File.Size)
}

func TestUploadEndpointRejectsMissingFile(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body, contentType := multipartBody(t, "other", map[string][]byte{"x.txt": []byte("x")})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}

func TestUploadBatchEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body, contentType := multipartBody(t, "files", map[string][]byte{
		"a.txt": []byte("a"),
		"b.txt": []byte("bb"),
		"c.txt": []byte("ccc"),
	})
	req := httptest.NewRequest(http.MethodPost, "/upload-batch", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success bool `json:"success"`
		Files   []struct {
			SerialNumber int64 `json:"serialNumber"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Files, 3)

	seen := map[int64]bool{}
	for _, f := range resp.Files {
		seen[f.SerialNumber] = true
	}
	assert.Equal(t, map[int64]bool{1: true, 2: true, 3: true}, seen)
}

func TestListEndpointPagination(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for i := 0; i < 3; i++ {
		body, contentType := multipartBody(t, "file", map[string][]byte{"f.txt": []byte("x")})
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/list?page=1&pageSize=2", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Files      []json.RawMessage `json:"files"`
			Pagination struct {
				Page       int   `json:"page"`
				PageSize   int   `json:"pageSize"`
				Total      int64 `json:"total"`
				TotalPages int64 `json:"totalPages"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data.Files, 2)
	assert.Equal(t, int64(3), resp.Data.Pagination.Total)
	assert.Equal(t, int64(2), resp.Data.Pagination.TotalPages)
}

func TestDownloadEndpointDistinguishesGoneFromNotFound(t *testing.T) {
	router, _, blobs := newTestRouter(t)

	body, contentType := multipartBody(t, "file", map[string][]byte{"data.bin": []byte("payload")})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(httptest.NewRecorder(), req)

	// by serial
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download/1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "payload", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "data.bin")

	// unknown serial
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download/99", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "file not found")

	// record present, blob removed out-of-band
	for path := range blobs.objects {
		delete(blobs.objects, path)
	}
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download/1", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "file already deleted")
}

func TestDeleteEndpointIsIdempotentAtHTTPLevel(t *testing.T) {
	router, repo, _ := newTestRouter(t)

	body, contentType := multipartBody(t, "file", map[string][]byte{"temp.txt": []byte("x")})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(httptest.NewRecorder(), req)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/delete/temp.txt", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, repo.records)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/delete/temp.txt", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "file not found")
}
