// Package client talks to the remote catalog authority on behalf of the
// admin CLI. The remote is the single source of truth; every call here
// either reads the whole collection or replaces it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/enovcorp/academy-core/internal/middleware"
	"github.com/enovcorp/academy-core/internal/modules/training"
)

type Client struct {
	BaseURL  string
	AdminKey string
	HTTP     *http.Client
}

func New(baseURL, adminKey string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		AdminKey: strings.TrimSpace(adminKey),
		HTTP: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

type listEnvelope struct {
	OK   int                 `json:"ok"`
	Data []training.Training `json:"data"`
}

type errorEnvelope struct {
	OK      int    `json:"ok"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// UploadResult is the remote's answer to a media upload.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// FetchTrainings reads the full remote collection.
func (c *Client) FetchTrainings(ctx context.Context) ([]training.Training, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/admin/academy/trainings", nil, "")
	if err != nil {
		return nil, err
	}
	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode trainings response: %w", err)
	}
	return training.NormalizeAll(envelope.Data), nil
}

// Publish replaces the remote collection with items.
func (c *Client) Publish(ctx context.Context, items []training.Training) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPut, "/api/v1/admin/academy/trainings",
		bytes.NewReader(payload), "application/json")
	return err
}

// Upload sends one media file and returns its public URL and storage path.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader, slug, kind, contentType string) (UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return UploadResult{}, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return UploadResult{}, err
	}
	if slug != "" {
		if err := writer.WriteField("slug", slug); err != nil {
			return UploadResult{}, err
		}
	}
	if kind != "" {
		if err := writer.WriteField("kind", kind); err != nil {
			return UploadResult{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return UploadResult{}, err
	}

	body, err := c.do(ctx, http.MethodPost, "/api/v1/admin/academy/upload",
		&buf, writer.FormDataContentType())
	if err != nil {
		return UploadResult{}, err
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return UploadResult{}, fmt.Errorf("decode upload response: %w", err)
	}
	if result.URL == "" {
		return UploadResult{}, fmt.Errorf("upload response carries no url")
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("remote base url is not set")
	}
	if c.AdminKey == "" {
		return nil, fmt.Errorf("admin key is not set")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(middleware.AdminKeyHeader, c.AdminKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorEnvelope
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
			return nil, fmt.Errorf("%s %s: status=%d: %s", method, path, resp.StatusCode, envelope.Message)
		}
		return nil, fmt.Errorf("%s %s: status=%d body=%s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}
