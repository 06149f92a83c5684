package speech

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
	"strings"
	"time"

	"podscribe/internal/config"
)

// cloudBackend posts audio to an OpenAI-compatible transcription endpoint.
// It is the baseline rank: always constructible when an endpoint is
// configured, with credential problems surfacing at call time so they are
// reported instead of silently downgraded.
type cloudBackend struct {
	baseURL string
	apiKey  string
	model   string
	lang    string
	client  *http.Client
}

func newCloudBackend(cfg config.Speech, lang string) (Backend, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.CloudBaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: no cloud endpoint configured", ErrBackendUnavailable)
	}
	timeout := time.Duration(cfg.CloudTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &cloudBackend{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.CloudAPIKey),
		model:   cfg.CloudModel,
		lang:    lang,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (b *cloudBackend) Name() string { return "cloud" }

type cloudResponse struct {
	Text string `json:"text"`
}

func (b *cloudBackend) Transcribe(ctx context.Context, path string, meta Metadata) (string, error) {
	if b.apiKey == "" {
		return "", fmt.Errorf("%w: cloud API key is not set", ErrAuthorizationDenied)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", b.model); err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if err := mw.WriteField("language", b.lang); err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloud transcription: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("%w: cloud endpoint returned HTTP %d", ErrAuthorizationDenied, resp.StatusCode)
	}
	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("cloud transcription: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed cloudResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode cloud response: %w", err)
	}
	return parsed.Text, nil
}
