package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const (
	defaultEndpoint    = "https://generativelanguage.googleapis.com/v1beta"
	defaultVisionModel = "gemini-2.5-flash"

	imageEndpoint = "https://image.pollinations.ai/prompt"
)

// Config for the generative model client.
type Config struct {
	Endpoint    string
	APIKey      string
	VisionModel string
	HTTPClient  *http.Client
}

// Client implements ports.TextGenerator against a generateContent-style
// vision API plus a prompt-URL image renderer.
type Client struct {
	endpoint    string
	apiKey      string
	visionModel string
	http        *http.Client
	logger      *slog.Logger
	now         func() time.Time
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = defaultVisionModel
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}

	return &Client{
		endpoint:    cfg.Endpoint,
		apiKey:      cfg.APIKey,
		visionModel: cfg.VisionModel,
		http:        cfg.HTTPClient,
		logger:      logger.With("component", "llm-client"),
		now:         time.Now,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Describe sends the prompt pair plus the image to the vision model and
// returns the generated description.
func (c *Client) Describe(ctx context.Context, systemPrompt, userMessage, imageRef string) (string, error) {
	fullPrompt := fmt.Sprintf("%s\n\nProduct Details:\n%s\n\nWrite one compelling marketing paragraph.", systemPrompt, userMessage)

	parts := []part{{Text: fullPrompt}}

	if imageRef != "" {
		imagePart, err := c.imagePart(ctx, imageRef)
		if err != nil {
			return "", err
		}
		if imagePart != nil {
			parts = append(parts, *imagePart)
		}
	}

	return c.generateContent(ctx, c.visionModel, parts)
}

// GenerateImage renders an image from the prompt and returns its URL.
// The render service is addressed by URL; no upload round-trip is
// needed. Known model labels map onto the renderer's model parameter.
func (c *Client) GenerateImage(ctx context.Context, prompt, model string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is required")
	}

	modelParam := "flux"
	enhance := false
	switch model {
	case "Flux Pro":
		modelParam = "flux-pro"
	case "DALL-E 3", "Midjourney Style":
		enhance = true
	}

	imageURL := fmt.Sprintf("%s/%s?width=1024&height=1024&seed=%d&nologo=true&model=%s",
		imageEndpoint,
		url.PathEscape(prompt),
		c.now().UnixMilli(),
		modelParam)
	if enhance {
		imageURL += "&enhance=true"
	}

	c.logger.Debug("image url generated", "model", modelParam, "enhance", enhance)
	return imageURL, nil
}

func (c *Client) generateContent(ctx context.Context, model string, parts []part) (string, error) {
	reqBody, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		if result.Error != nil && result.Error.Message != "" {
			return "", fmt.Errorf("model request failed: %s", result.Error.Message)
		}
		return "", fmt.Errorf("model request failed: http %d", resp.StatusCode)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// imagePart converts an image reference into an inline part: data URIs
// are used as-is, remote URLs are fetched and inlined.
func (c *Client) imagePart(ctx context.Context, imageRef string) (*part, error) {
	var data string

	switch {
	case strings.HasPrefix(imageRef, "data:"):
		_, payload, found := strings.Cut(imageRef, "base64,")
		if !found {
			payload = strings.TrimPrefix(imageRef, "data:")
		}
		data = payload
	case strings.HasPrefix(imageRef, "http://"), strings.HasPrefix(imageRef, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageRef, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch image: %w", err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		data = base64.StdEncoding.EncodeToString(raw)
	default:
		return nil, nil
	}

	return &part{InlineData: &inlineData{Data: data, MimeType: "image/jpeg"}}, nil
}
