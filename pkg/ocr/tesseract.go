package ocr

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
)

// TesseractClient calls a tesseract-server instance (POST /tesseract).
type TesseractClient struct {
	baseURL    string
	languages  []string
	httpClient *http.Client
}

func NewTesseractClient(baseURL string, languages ...string) *TesseractClient {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		languages:  languages,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *TesseractClient) Name() string {
	return "tesseract"
}

func (c *TesseractClient) Extract(ctx context.Context, image []byte, filename string) (string, error) {
	if err := validate(image); err != nil {
		return "", err
	}
	if filename == "" {
		filename = "image"
	}

	body, contentType, err := c.form(image, filename)
	if err != nil {
		return "", fmt.Errorf("tesseract form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tesseract", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tesseract request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("tesseract status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var raw tesseractResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("tesseract decode: %w", err)
	}

	text := strings.TrimSpace(raw.Data.Stdout)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func (c *TesseractClient) form(image []byte, filename string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	opts, err := json.Marshal(tesseractOptions{Languages: c.languages})
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("options", string(opts)); err != nil {
		return nil, "", err
	}

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

type tesseractOptions struct {
	Languages []string `json:"languages"`
}

type tesseractResponse struct {
	Data struct {
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
	} `json:"data"`
}
