// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/jeranaias/geminipad/internal/logger"
)

const (
	// DefaultBaseURL is the Gemini REST endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is bound when Initialize gets an empty model name.
	DefaultModel = "gemini-pro"
)

var (
	// ErrNotInitialized is returned by every call made before Initialize.
	ErrNotInitialized = errors.New("gemini client not initialized: add an API key")

	// ErrInvalidAPIKey is returned by Initialize for a blank key.
	ErrInvalidAPIKey = errors.New("gemini API key is empty")

	// ErrBlocked is returned when Gemini refuses to answer for safety reasons.
	ErrBlocked = errors.New("response blocked by safety filters")

	// ErrAuthFailed matches API errors caused by a bad or unauthorized key.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited matches API errors for exhausted quota.
	ErrRateLimited = errors.New("rate limited")
)

// sharedHTTPClient has no overall timeout: request lifetime is controlled by
// the caller's context, and streamed replies can run for minutes.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
	},
}

// =============================================================================
// ERRORS
// =============================================================================

// APIError is a non-2xx reply from the API.
type APIError struct {
	StatusCode int    // HTTP status
	Status     string // Google status, e.g. INVALID_ARGUMENT
	Reason     string // first error detail reason, e.g. API_KEY_INVALID
	Message    string
}

func (e *APIError) Error() string {
	status := e.Status
	if status == "" {
		status = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("gemini API error (%d %s): %s", e.StatusCode, status, e.Message)
}

// Is lets callers test for ErrAuthFailed and ErrRateLimited.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAuthFailed:
		return e.StatusCode == http.StatusUnauthorized ||
			e.StatusCode == http.StatusForbidden ||
			e.Reason == "API_KEY_INVALID"
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// maxMessage bounds the message kept from a plain-text error body.
const maxMessage = 512

// convertError maps an SDK failure onto *APIError. Anything that is not an
// API reply is wrapped as a request failure.
func convertError(err error) error {
	var sdkErr genai.APIError
	if !errors.As(err, &sdkErr) {
		return fmt.Errorf("gemini request failed: %w", err)
	}

	e := &APIError{
		StatusCode: sdkErr.Code,
		Status:     sdkErr.Status,
		Message:    strings.TrimSpace(sdkErr.Message),
	}
	// Plain-text bodies come back with the HTTP status line, e.g. "502 Bad Gateway".
	if strings.HasPrefix(e.Status, strconv.Itoa(e.StatusCode)+" ") {
		e.Status = ""
	}
	if e.Message == "" {
		e.Message = http.StatusText(e.StatusCode)
	}
	if len(e.Message) > maxMessage {
		e.Message = e.Message[:maxMessage] + "..."
	}
	for _, d := range sdkErr.Details {
		if reason, ok := d["reason"].(string); ok && reason != "" {
			e.Reason = reason
			break
		}
	}
	return e
}

// =============================================================================
// RESPONSES
// =============================================================================

// responseText joins the text parts of the first candidate, skipping
// thought summaries.
func responseText(r *genai.GenerateContentResponse) string {
	if r == nil || len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func responseBlocked(r *genai.GenerateContentResponse) bool {
	if r == nil {
		return false
	}
	if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "" {
		return true
	}
	return len(r.Candidates) > 0 && r.Candidates[0] != nil &&
		r.Candidates[0].FinishReason == genai.FinishReasonSafety
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the Gemini API through the google.golang.org/genai SDK.
// It is safe for concurrent use.
type Client struct {
	mu     sync.RWMutex
	apiKey string
	model  string
	sdk    *genai.Client

	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient returns an unbound client; call Initialize before use.
func NewClient() *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		http:    sharedHTTPClient,
	}
}

// WithBaseURL points the client at another endpoint (tests, proxies). A
// trailing version segment such as /v1beta selects the API version. Call it
// before Initialize.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// WithHTTPClient replaces the HTTP client. Call it before Initialize.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// WithRateLimit allows at most perMinute requests per minute, with no
// bursting. Zero or less disables the limit.
func (c *Client) WithRateLimit(perMinute int) *Client {
	c.SetRateLimit(perMinute)
	return c
}

// SetRateLimit changes the request limit at runtime.
func (c *Client) SetRateLimit(perMinute int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if perMinute <= 0 {
		c.limiter = nil
		return
	}
	c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

var versionSegment = regexp.MustCompile(`^v\d+(alpha|beta)?\d*$`)

// splitBaseURL separates a trailing API version from the endpoint.
func splitBaseURL(raw string) (base, version string) {
	u, err := url.Parse(raw)
	if err != nil {
		return raw, ""
	}
	path := strings.TrimRight(u.Path, "/")
	i := strings.LastIndex(path, "/")
	if i < 0 || !versionSegment.MatchString(path[i+1:]) {
		return raw, ""
	}
	version = path[i+1:]
	u.Path = path[:i+1]
	return u.String(), version
}

func (c *Client) Initialize(apiKey, model string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return ErrInvalidAPIKey
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}

	base, version := splitBaseURL(c.baseURL)
	sdk, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.http,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    base,
			APIVersion: version,
		},
	})
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}

	c.mu.Lock()
	c.apiKey, c.model, c.sdk = apiKey, model, sdk
	c.mu.Unlock()

	logger.WithFields(map[string]any{"model": model, "key": c.APIKeyMasked()}).Infof("gemini client initialized")
	return nil
}

func (c *Client) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sdk != nil
}

// Model returns the bound model name.
func (c *Client) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// APIKeyMasked describes the bound key without revealing any of it.
func (c *Client) APIKeyMasked() string {
	c.mu.RLock()
	key := c.apiKey
	c.mu.RUnlock()
	return MaskKey(key)
}

// MaskKey returns a short SHA-256 fingerprint of key for display and logs.
func MaskKey(key string) string {
	if key == "" {
		return "[not set]"
	}
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("[length=%d, fingerprint=%s]", len(key), hex.EncodeToString(h[:4]))
}

type binding struct {
	sdk     *genai.Client
	model   string
	limiter *rate.Limiter
}

func (c *Client) bound() (binding, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sdk == nil {
		return binding{}, ErrNotInitialized
	}
	return binding{sdk: c.sdk, model: c.model, limiter: c.limiter}, nil
}

func (b binding) wait(ctx context.Context) error {
	if b.limiter == nil {
		return nil
	}
	return b.limiter.Wait(ctx)
}

func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	text, err := c.generate(ctx, prompt)
	if err != nil && !isCancel(err) {
		logger.WithError(err).Errorf("gemini generateContent failed")
	}
	return text, err
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	b, err := c.bound()
	if err != nil {
		return "", err
	}
	if err := b.wait(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := b.sdk.Models.GenerateContent(ctx, b.model, genai.Text(prompt), nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", convertError(err)
	}
	logger.WithFields(map[string]any{
		"method":   "generateContent",
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debugf("gemini response")

	if responseBlocked(resp) {
		return "", ErrBlocked
	}
	return responseText(resp), nil
}

func (c *Client) StreamGenerateContent(ctx context.Context, prompt string, onChunk func(string) error) error {
	return Consume(c.Stream(ctx, prompt), onChunk)
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
