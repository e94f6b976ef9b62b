package fanvue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
}

// MediaTypeFor classifies a file as "video" or "image" from its extension.
// Unrecognized extensions default to image.
func MediaTypeFor(path string) string {
	if videoExtensions[strings.ToLower(filepath.Ext(path))] {
		return "video"
	}
	return "image"
}

// Uploader drives Fanvue's multipart upload transaction: create a session,
// obtain a signed write URL, transfer the bytes, finalize. Each step feeds
// the next; any failure aborts the whole operation without cleaning up the
// remote upload session. Re-running for the same file creates a fresh
// session and a fresh media object.
type Uploader struct {
	client *Client

	// transferClient carries the binary PUT to the signed URL and gets a
	// longer timeout than the metadata calls since files can be large.
	transferClient *http.Client
}

// NewUploader creates an uploader on top of the API client.
func NewUploader(client *Client, transferTimeout time.Duration) *Uploader {
	if transferTimeout == 0 {
		transferTimeout = 120 * time.Second
	}
	return &Uploader{
		client:         client,
		transferClient: &http.Client{Timeout: transferTimeout},
	}
}

type createUploadRequest struct {
	Name      string `json:"name"`
	Filename  string `json:"filename"`
	MediaType string `json:"mediaType"`
}

type createUploadResponse struct {
	UploadID string `json:"uploadId"`
}

type signUploadRequest struct {
	UploadID   string `json:"uploadId"`
	PartNumber int    `json:"partNumber"`
}

type signUploadResponse struct {
	URL string `json:"url"`
}

type uploadPart struct {
	PartNumber int    `json:"partNumber"`
	ETag       string `json:"eTag"`
}

type completeUploadRequest struct {
	UploadID string       `json:"uploadId"`
	Parts    []uploadPart `json:"parts"`
}

type completeUploadResponse struct {
	UUID string `json:"uuid"`
}

// Upload converts a local file into a durable Fanvue media object and
// returns its uuid.
func (u *Uploader) Upload(ctx context.Context, filePath string) (string, error) {
	if u.client.creds.AccessToken() == "" {
		return "", ErrUnauthenticated
	}

	// Whole file is read into memory; uploads are always a single part.
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	filename := filepath.Base(filePath)
	mediaType := MediaTypeFor(filePath)

	// 1. Create upload session
	body, err := u.client.Do(ctx, http.MethodPost, "/media/upload/multipart/create", createUploadRequest{
		Name:      filename,
		Filename:  filename,
		MediaType: mediaType,
	})
	if err != nil {
		return "", fmt.Errorf("create upload session: %w", err)
	}

	var created createUploadResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("parse create response: %w", err)
	}
	if created.UploadID == "" {
		return "", fmt.Errorf("create upload session: no uploadId in response")
	}

	// 2. Get signed URL for the single part. True multi-part chunking is
	// unimplemented; the part number is always 1.
	body, err = u.client.Do(ctx, http.MethodPost, "/media/upload/multipart/sign", signUploadRequest{
		UploadID:   created.UploadID,
		PartNumber: 1,
	})
	if err != nil {
		return "", fmt.Errorf("sign upload: %w", err)
	}

	var signed signUploadResponse
	if err := json.Unmarshal(body, &signed); err != nil {
		return "", fmt.Errorf("parse sign response: %w", err)
	}
	if signed.URL == "" {
		return "", fmt.Errorf("sign upload: no url in response")
	}

	// 3. Transfer the bytes to the signed URL
	etag, err := u.transfer(ctx, signed.URL, data)
	if err != nil {
		return "", fmt.Errorf("transfer to signed url: %w", err)
	}

	// 4. Complete upload
	body, err = u.client.Do(ctx, http.MethodPost, "/media/upload/multipart/complete", completeUploadRequest{
		UploadID: created.UploadID,
		Parts:    []uploadPart{{PartNumber: 1, ETag: etag}},
	})
	if err != nil {
		return "", fmt.Errorf("complete upload: %w", err)
	}

	var completed completeUploadResponse
	if err := json.Unmarshal(body, &completed); err != nil {
		return "", fmt.Errorf("parse complete response: %w", err)
	}

	slog.Info("media uploaded",
		"media_uuid", completed.UUID,
		"media_type", mediaType,
		"filename", filename,
		"size", len(data),
	)

	return completed.UUID, nil
}

// transfer issues the raw binary PUT and returns the ETag header with any
// surrounding quotes stripped; the complete call requires it bare.
func (u *Uploader) transfer(ctx context.Context, signedURL string, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := u.transferClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	return strings.Trim(resp.Header.Get("ETag"), `"`), nil
}
