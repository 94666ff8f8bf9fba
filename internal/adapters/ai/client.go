// Package ai provides a resilient client for an OpenAI-compatible
// chat-completions endpoint, used to infer snippet metadata from code
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"codenest/internal/core/codelang"
	perr "codenest/internal/platform/errors"
	"codenest/internal/platform/logger"
	"codenest/internal/services/enrich/domain"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultModel    = "gpt-4o-mini"
	defaultAttempts = 3

	promptTitle    = "Give me a short title for this code. Do not deviate."
	promptLanguage = "In one word, tell me what programming language the user is using. Do not deviate."
	promptTags     = "Generate up to 3 tags for this code. Do not deviate. " +
		"In the style of a comma-separated list. E.g #tag1, #tag2, #tag3. " +
		"You do not need 3 tags, you can return 1 or 2 if you want."
)

// Options configures the Client
type Options struct {
	BaseURL string
	APIKey  string
	Model   string

	// Timeout bounds each completion call; a slow response counts as a
	// failed attempt against the retry budget
	Timeout time.Duration

	// MaxAttempts per field inference; backoff between attempts is
	// 2^attempt seconds
	MaxAttempts int
}

// Client implements domain.InferencePort over HTTP
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	sleep func(context.Context, time.Duration)
}

// New creates a Client with sane defaults
func New(o Options) *Client {
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultAttempts
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("ai"),
		sleep: sleepCtx,
	}
}

// chat wire types, the slice of the API we actually use

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Infer runs the three field inferences concurrently; total latency is
// bounded by the slowest single field rather than the sum
// on partial failure the computed fields are still returned alongside the
// first error so the caller can apply what it has
func (c *Client) Infer(ctx context.Context, code string) (domain.Result, error) {
	var (
		res  domain.Result
		errs [3]error
		wg   sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		res.Title, errs[0] = c.InferTitle(ctx, code)
	}()
	go func() {
		defer wg.Done()
		res.Language, errs[1] = c.InferLanguage(ctx, code)
	}()
	go func() {
		defer wg.Done()
		res.Tags, errs[2] = c.InferTags(ctx, code)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// InferTitle asks for a short title for the code
func (c *Client) InferTitle(ctx context.Context, code string) (string, error) {
	out, err := c.completeWithRetry(ctx, promptTitle, code)
	if err != nil {
		return "", err
	}
	return codelang.CleanTitle(out), nil
}

// InferLanguage asks which language the code is written in
func (c *Client) InferLanguage(ctx context.Context, code string) (string, error) {
	out, err := c.completeWithRetry(ctx, promptLanguage, code)
	if err != nil {
		return "", err
	}
	return codelang.CanonicalLanguage(out), nil
}

// InferTags asks for up to three hashtags for the code
func (c *Client) InferTags(ctx context.Context, code string) ([]string, error) {
	out, err := c.completeWithRetry(ctx, promptTags, code)
	if err != nil {
		return nil, err
	}
	return codelang.ParseTags(out), nil
}

// completeWithRetry issues a completion with bounded retries
// an empty completion counts as a failure; backoff grows 2s, 4s, ...
func (c *Client) completeWithRetry(ctx context.Context, prompt, code string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		out, err := c.complete(ctx, prompt, code)
		if err == nil && strings.TrimSpace(out) != "" {
			return out, nil
		}
		if err == nil {
			err = perr.Unavailablef("empty completion")
		}
		lastErr = err
		c.log.Debug().Err(err).Int("attempt", attempt).Msg("completion attempt failed")

		if attempt == c.opts.MaxAttempts {
			break
		}
		c.sleep(ctx, time.Duration(1<<attempt)*time.Second)
		if ctx.Err() != nil {
			return "", perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "completion cancelled")
		}
	}
	return "", perr.Wrapf(lastErr, perr.ErrorCodeUnavailable, "completion failed after %d attempts", c.opts.MaxAttempts)
}

// complete performs one chat-completion call
func (c *Client) complete(ctx context.Context, prompt, code string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.opts.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt + ", [" + code + "]"},
		},
	})
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "encode completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "new completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "completion request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "read completion response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", perr.Unavailablef("completion status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "decode completion response")
	}
	if out.Error != nil {
		return "", perr.Unavailablef("completion error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", perr.Unavailablef("completion returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// sleepCtx waits for d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
