package uploadcontroller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Images larger than this are rejected before touching the media host.
const maxUploadSize = 5 << 20

// Result is the hosted location of an uploaded image.
type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// MediaHost stores image bytes and returns their public location.
type MediaHost interface {
	UploadImage(ctx context.Context, filename string, data []byte) (*Result, error)
}

// HostClient uploads to the external media host's REST API.
type HostClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHostClient(baseURL, apiKey string) *HostClient {
	return &HostClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type hostResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

func (h *HostClient) UploadImage(ctx context.Context, filename string, data []byte) (*Result, error) {
	publicID := uuid.NewString()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("api_key", h.apiKey); err != nil {
		return nil, err
	}
	if err := writer.WriteField("public_id", publicID); err != nil {
		return nil, err
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/image/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload: media host request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload: media host returned status %d", resp.StatusCode)
	}

	var hosted hostResponse
	if err := json.NewDecoder(resp.Body).Decode(&hosted); err != nil {
		return nil, fmt.Errorf("upload: decode media host response: %w", err)
	}
	if hosted.PublicID == "" {
		hosted.PublicID = publicID
	}
	return &Result{URL: hosted.SecureURL, PublicID: hosted.PublicID}, nil
}

// POST /upload — admin only. Uploading is the request's primary purpose, so
// a media-host failure surfaces as an explicit error instead of being
// swallowed.
func UploadImage(host MediaHost) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}
		if file.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File size must be less than 5MB"})
			return
		}
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
			return
		}

		result, err := host.UploadImage(c.Request.Context(), file.Filename, data)
		if err != nil {
			log.Error().Err(err).Str("filename", file.Filename).Msg("upload: media host upload failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"url":      result.URL,
			"publicId": result.PublicID,
		})
	}
}
