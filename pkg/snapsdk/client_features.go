package snapsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Analyze uploads an image for recognition and translation.
func (c *SDKClient) Analyze(ctx context.Context, accessToken string, req AnalyzeRequest) (*AnalyzeResult, error) {
	langs, err := json.Marshal(req.Langs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode langs: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	filename := req.Filename
	if filename == "" {
		filename = "image"
	}
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := io.Copy(part, req.Image); err != nil {
		return nil, fmt.Errorf("failed to copy image: %w", err)
	}
	if err := mw.WriteField("mode", req.Mode); err != nil {
		return nil, err
	}
	if err := mw.WriteField("langs", string(langs)); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/analyze/", accessToken, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var out AnalyzeResult
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateImage renders an image from a text prompt.
func (c *SDKClient) GenerateImage(ctx context.Context, accessToken, prompt string) (*GeneratedImage, error) {
	var out GeneratedImage
	in := map[string]string{"prompt": prompt}
	if err := c.doJSON(ctx, http.MethodPost, "/generate/image", accessToken, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Languages returns the selectable languages, display name to language code.
func (c *SDKClient) Languages(ctx context.Context) (map[string]string, error) {
	out := map[string]string{}
	if err := c.doJSON(ctx, http.MethodGet, "/languages", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitFeedback records a thumbs up/down for a translation.
func (c *SDKClient) SubmitFeedback(ctx context.Context, accessToken string, fb Feedback) (*Message, error) {
	var out Message
	if err := c.doJSON(ctx, http.MethodPost, "/feedback/", accessToken, fb, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
