// Package ocr provides a client for the MinerU document parsing service
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nydaym/mineru-extractor/internal/config"
	apperrors "github.com/Nydaym/mineru-extractor/internal/errors"
	"github.com/Nydaym/mineru-extractor/internal/metrics"
)

// TextSource turns an uploaded document into plain text. The API layer only
// depends on this interface so handlers can be tested without a MinerU
// deployment.
type TextSource interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// Client calls MinerU's /file_parse endpoint and pulls the markdown content
// out of the response.
type Client struct {
	cfg    config.OCRConfig
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a new MinerU client
func NewClient(cfg config.OCRConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30
	}

	return &Client{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// parseResponse mirrors the MinerU payload shape: one entry per uploaded
// file, keyed by file name, each carrying the parsed markdown.
type parseResponse struct {
	Results map[string]struct {
		MDContent string `json:"md_content"`
	} `json:"results"`
}

// ExtractText uploads the file at path and returns the recognized markdown
// text of the first result. No retries; a failed parse surfaces as OCR_001
// and the caller decides what to do with it.
func (c *Client) ExtractText(ctx context.Context, path string) (string, error) {
	reqID := uuid.New().String()
	start := time.Now()

	body, contentType, err := c.buildUpload(path)
	if err != nil {
		metrics.RecordOCRCall(false)
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/file_parse", body)
	if err != nil {
		metrics.RecordOCRCall(false)
		return "", apperrors.Wrap(err, "OCR_001", "failed to create OCR request")
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("ocr request",
		zap.String("req_id", reqID),
		zap.String("file", filepath.Base(path)),
	)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.RecordOCRCall(false)
		c.logger.Warn("ocr request failed",
			zap.String("req_id", reqID),
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)),
		)
		return "", apperrors.Wrap(apperrors.ErrOCRUnavailable, "OCR_001",
			fmt.Sprintf("OCR service unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordOCRCall(false)
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Warn("ocr non-200 response",
			zap.String("req_id", reqID),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)),
		)
		return "", apperrors.Wrap(apperrors.ErrOCRUnavailable, "OCR_001",
			fmt.Sprintf("OCR service error (status %d): %s", resp.StatusCode, string(respBody)))
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.RecordOCRCall(false)
		return "", apperrors.Wrap(err, "OCR_001", "failed to decode OCR response")
	}

	for _, result := range parsed.Results {
		metrics.RecordOCRCall(true)
		c.logger.Debug("ocr response",
			zap.String("req_id", reqID),
			zap.Int("text_bytes", len(result.MDContent)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return result.MDContent, nil
	}

	metrics.RecordOCRCall(false)
	return "", apperrors.Wrap(apperrors.ErrOCRNoText, "OCR_002", "OCR response contained no parsed content")
}

// buildUpload reads the whole file into a multipart body. Uploads are bounded
// by the API layer's body limit, so buffering in memory is fine here.
func (c *Client) buildUpload(path string) (io.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", apperrors.Wrap(err, "OCR_001", "failed to open upload for OCR")
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return nil, "", apperrors.Wrap(err, "OCR_001", "failed to build OCR upload")
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", apperrors.Wrap(err, "OCR_001", "failed to read upload for OCR")
	}
	if err := writer.WriteField("return_md", "true"); err != nil {
		return nil, "", apperrors.Wrap(err, "OCR_001", "failed to build OCR upload")
	}
	if err := writer.Close(); err != nil {
		return nil, "", apperrors.Wrap(err, "OCR_001", "failed to finalize OCR upload")
	}

	return &buf, writer.FormDataContentType(), nil
}
