package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voxa/internal/models"
)

const maxUploadSize = 10 << 20 // 10 MB

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// HostedUploader talks to the hosted media API over HTTP multipart.
type HostedUploader struct {
	uploadURL string
	apiKey    string
	folder    string
	client    *http.Client
}

func NewHostedUploader(uploadURL, apiKey, folder string) *HostedUploader {
	return &HostedUploader{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		folder:    folder,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *HostedUploader) Upload(ctx context.Context, input UploadInput) (*Asset, error) {
	if u.uploadURL == "" {
		return nil, models.NewInternalError(errors.New("media uploads are not configured"))
	}
	if !allowedContentTypes[input.ContentType] {
		return nil, models.NewValidationError("Unsupported image type")
	}

	body, contentType, err := u.buildForm(input)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("media service unreachable: %w", err))
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return nil, models.NewInternalError(fmt.Errorf("decode media response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		msg := parsed.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("Media upload failed with status %d", resp.StatusCode)
		}
		return nil, models.NewInternalError(errors.New(msg))
	}

	assetURL := parsed.SecureURL
	if assetURL == "" {
		assetURL = parsed.URL
	}
	if assetURL == "" || parsed.PublicID == "" {
		return nil, models.NewInternalError(errors.New("incomplete response from media service"))
	}
	return &Asset{URL: assetURL, PublicID: parsed.PublicID}, nil
}

func (u *HostedUploader) buildForm(input UploadInput) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", input.FileName)
	if err != nil {
		return nil, "", err
	}
	n, err := io.Copy(part, io.LimitReader(input.Body, maxUploadSize+1))
	if err != nil {
		return nil, "", err
	}
	if n > maxUploadSize {
		return nil, "", models.NewValidationError("Image exceeds the 10 MB limit")
	}
	if u.folder != "" {
		if err := writer.WriteField("folder", u.folder); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

func (u *HostedUploader) Delete(ctx context.Context, publicID string) error {
	if u.uploadURL == "" {
		return models.NewInternalError(errors.New("media uploads are not configured"))
	}
	if publicID == "" {
		return models.NewValidationError("Missing public id")
	}

	destroyURL := strings.TrimSuffix(u.uploadURL, "/upload") + "/destroy"
	form := url.Values{"public_id": {publicID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destroyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return models.NewInternalError(fmt.Errorf("media service unreachable: %w", err))
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		return models.NewInternalError(fmt.Errorf("media delete failed with status %d", resp.StatusCode))
	}
	return nil
}
