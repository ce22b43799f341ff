package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/adityaraj1236/linqai/internal/domain"
)

const defaultEndpoint = "https://api2.transloadit.com/assemblies"

// Config for the assembly client. Zero values fall back to the service
// defaults used by the canvas: 60 poll attempts at 1s intervals.
type Config struct {
	Endpoint     string
	AuthKey      string
	PollInterval time.Duration
	MaxAttempts  int
	HTTPClient   *http.Client
}

// Client talks to an assembly-based media processing service: submit a
// processing recipe plus the source file as one multipart request, then
// poll the assembly URL until the service reports completion.
type Client struct {
	endpoint     string
	authKey      string
	pollInterval time.Duration
	maxAttempts  int
	http         *http.Client
	logger       *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 60
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}

	return &Client{
		endpoint:     cfg.Endpoint,
		authKey:      cfg.AuthKey,
		pollInterval: cfg.PollInterval,
		maxAttempts:  cfg.MaxAttempts,
		http:         cfg.HTTPClient,
		logger:       logger.With("component", "media-client"),
	}
}

type assembly struct {
	OK          string                        `json:"ok"`
	AssemblyID  string                        `json:"assembly_id"`
	AssemblyURL string                        `json:"assembly_url"`
	Results     map[string][]assemblyResult   `json:"results"`
	Error       string                        `json:"error"`
	Message     string                        `json:"message"`
}

type assemblyResult struct {
	URL    string `json:"url"`
	SSLURL string `json:"ssl_url"`
}

type step map[string]interface{}

// Resize fits the image to width x height and returns the processed
// image reference.
func (c *Client) Resize(ctx context.Context, imageRef string, width, height int) (string, error) {
	steps := map[string]step{
		"resized": {
			"robot":             "/image/resize",
			"use":               ":original",
			"width":             width,
			"height":            height,
			"resize_strategy":   "fit",
			"imagemagick_stack": "v3.0.1",
		},
		"optimized": {
			"robot":       "/image/optimize",
			"use":         "resized",
			"progressive": true,
		},
	}

	result, err := c.process(ctx, imageRef, "image.png", steps)
	if err != nil {
		return "", err
	}
	return c.bestResultURL(result, "optimized", "resized")
}

// ExtractFrame grabs one frame from the video at position percent of
// its duration and returns the frame reference.
func (c *Client) ExtractFrame(ctx context.Context, videoRef string, position int) (string, error) {
	if position < 0 {
		position = 0
	}
	if position > 100 {
		position = 100
	}

	steps := map[string]step{
		"thumbed": {
			"robot":  "/video/thumbs",
			"use":    ":original",
			"count":  1,
			"offset": fmt.Sprintf("%d%%", position),
			"format": "jpg",
			"width":  1280,
		},
	}

	result, err := c.process(ctx, videoRef, "video.mp4", steps)
	if err != nil {
		return "", err
	}
	return c.bestResultURL(result, "thumbed")
}

func (c *Client) process(ctx context.Context, fileRef, fileName string, steps map[string]step) (*assembly, error) {
	created, err := c.createAssembly(ctx, fileRef, fileName, steps)
	if err != nil {
		return nil, err
	}

	if created.OK == "ASSEMBLY_COMPLETED" {
		return created, nil
	}
	return c.waitForCompletion(ctx, created.AssemblyURL)
}

// createAssembly submits the recipe and the source file as multipart
// form data. Inline data URIs are decoded and attached as the file
// part; remote references are handed to the service by URL.
func (c *Client) createAssembly(ctx context.Context, fileRef, fileName string, steps map[string]step) (*assembly, error) {
	params := map[string]interface{}{
		"auth":  map[string]string{"key": c.authKey},
		"steps": steps,
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fileBytes, inline, err := decodeDataURI(fileRef)
	if err != nil {
		return nil, err
	}
	if !inline {
		params["import_url"] = fileRef
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	if err := writer.WriteField("params", string(paramsJSON)); err != nil {
		return nil, err
	}

	if inline {
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(fileBytes); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var created assembly
	if err := json.Unmarshal(respBytes, &created); err != nil {
		return nil, fmt.Errorf("decode assembly response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("assembly request failed: %s", assemblyError(&created, resp.StatusCode))
	}

	c.logger.Debug("assembly created",
		"assembly_id", created.AssemblyID,
		"status", created.OK)
	return &created, nil
}

// waitForCompletion polls the assembly URL with a bounded attempt count.
// The scheduler imposes no deadline of its own, so this loop is the
// node's effective timeout.
func (c *Client) waitForCompletion(ctx context.Context, assemblyURL string) (*assembly, error) {
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, assemblyURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}

		var status assembly
		decodeErr := json.NewDecoder(resp.Body).Decode(&status)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, decodeErr
		}

		if status.OK == "ASSEMBLY_COMPLETED" {
			return &status, nil
		}
		if status.Error != "" {
			return nil, fmt.Errorf("assembly failed: %s", assemblyError(&status, resp.StatusCode))
		}
	}

	return nil, fmt.Errorf("assembly timeout after %d attempts", c.maxAttempts)
}

func (c *Client) bestResultURL(result *assembly, stepNames ...string) (string, error) {
	for _, name := range stepNames {
		for _, r := range result.Results[name] {
			if r.SSLURL != "" {
				return r.SSLURL, nil
			}
			if r.URL != "" {
				return r.URL, nil
			}
		}
	}
	return "", domain.NewNodeError(result.AssemblyID, "assembly_result", domain.ErrNotFound)
}

func assemblyError(a *assembly, statusCode int) string {
	switch {
	case a.Message != "":
		return a.Message
	case a.Error != "":
		return a.Error
	default:
		return fmt.Sprintf("http %d", statusCode)
	}
}

// decodeDataURI returns the decoded bytes of a data: URI, or inline ==
// false for remote references.
func decodeDataURI(ref string) ([]byte, bool, error) {
	if !strings.HasPrefix(ref, "data:") {
		return nil, false, nil
	}

	_, payload, found := strings.Cut(ref, ",")
	if !found {
		return nil, false, fmt.Errorf("malformed data uri")
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode data uri: %w", err)
	}
	return decoded, true, nil
}
