// Package processing talks to the external background-removal and
// category-prediction service.
package processing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/stylerack/stylerack/internal/models"
)

// ErrProcessingFailed is the generic failure surfaced to the user; the
// service has no partial-result contract.
var ErrProcessingFailed = errors.New("image processing failed")

// Result is what the service returns for a processed upload.
type Result struct {
	ImagePath string `json:"image_path"`
	Category  string `json:"category"`
}

// Processor produces a processed-image reference and a predicted category
// for a raw upload.
type Processor interface {
	Process(ctx context.Context, filename string, image io.Reader) (*Result, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Process posts the raw image to the service's /process-image endpoint and
// decodes the processed-image path plus predicted category.
func (c *Client) Process(ctx context.Context, filename string, image io.Reader) (*Result, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/process-image", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrProcessingFailed, errResp.Error)
		}
		return nil, fmt.Errorf("%w: status %d", ErrProcessingFailed, resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.ImagePath == "" {
		return nil, fmt.Errorf("%w: empty image path in response", ErrProcessingFailed)
	}

	if !models.Category(result.Category).Valid() {
		result.Category = string(PredictCategoryFromFilename(filename))
	}

	return &result, nil
}
