// Package extract turns document chunks into raw show candidates via the
// Anthropic API, under a per-run request budget and an overload-only retry
// policy.
package extract

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/showatlas/showatlas/internal/chunk"
	"github.com/showatlas/showatlas/internal/model"
	"github.com/showatlas/showatlas/internal/resilience"
	"github.com/showatlas/showatlas/pkg/anthropic"
)

// Options configures an Extractor.
type Options struct {
	// Model and MaxTokens are passed through to the API.
	Model     string
	MaxTokens int64

	// MaxRequestsPerRun caps how many chunks are actually sent per run,
	// independent of how many the chunker produced. Default: 6.
	MaxRequestsPerRun int

	// RequestDelay is the fixed pause between successive extraction calls.
	// Default: 1500ms.
	RequestDelay time.Duration

	// OverloadRetries and OverloadDelay bound the retry loop for
	// service-overloaded responses. Defaults: 3 attempts, 5s.
	OverloadRetries int
	OverloadDelay   time.Duration
}

// Extractor sends chunk prompts to the extraction model and parses the
// candidate arrays out of its responses. One Extractor serves one run; the
// request budget is not reset.
type Extractor struct {
	client  anthropic.Client
	opts    Options
	limiter *rate.Limiter
	sent    int
}

// New creates an Extractor over client.
func New(client anthropic.Client, opts Options) *Extractor {
	if opts.MaxRequestsPerRun <= 0 {
		opts.MaxRequestsPerRun = 6
	}
	if opts.RequestDelay <= 0 {
		opts.RequestDelay = 1500 * time.Millisecond
	}
	if opts.OverloadRetries <= 0 {
		opts.OverloadRetries = 3
	}
	if opts.OverloadDelay <= 0 {
		opts.OverloadDelay = 5 * time.Second
	}
	return &Extractor{
		client:  client,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(opts.RequestDelay), 1),
	}
}

// ExtractAll processes chunks in order until the run budget is spent. A
// chunk that fails — overloaded past its retries, an unparseable response,
// an empty array — contributes zero candidates and never stops the rest.
func (e *Extractor) ExtractAll(ctx context.Context, chunks []chunk.Chunk, sourceURL string) []model.RawCandidate {
	var out []model.RawCandidate

	for _, c := range chunks {
		if e.sent >= e.opts.MaxRequestsPerRun {
			zap.L().Warn("extraction request budget exhausted",
				zap.Int("budget", e.opts.MaxRequestsPerRun),
				zap.String("chunk", c.Label),
				zap.String("url", sourceURL),
			)
			break
		}

		cands, err := e.extractChunk(ctx, c, sourceURL)
		if err != nil {
			zap.L().Warn("chunk extraction failed",
				zap.String("chunk", c.Label),
				zap.String("url", sourceURL),
				zap.Error(err),
			)
			continue
		}
		out = append(out, cands...)
	}

	return out
}

func (e *Extractor) extractChunk(ctx context.Context, c chunk.Chunk, sourceURL string) ([]model.RawCandidate, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "extract: rate limit wait")
	}
	e.sent++

	req := anthropic.MessageRequest{
		Model:     e.opts.Model,
		MaxTokens: e.opts.MaxTokens,
		System:    anthropic.BuildCachedSystemBlocks(systemPrompt),
		Messages: []anthropic.Message{
			{Role: "user", Content: extractionPrompt + c.Text},
		},
	}

	retryCfg := resilience.RetryConfig{
		MaxAttempts: e.opts.OverloadRetries,
		Delay:       e.opts.OverloadDelay,
		ShouldRetry: resilience.IsOverload,
		OnRetry:     resilience.RetryLogger("anthropic", "extract"),
	}

	resp, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		resp, err := e.client.CreateMessage(ctx, req)
		if err != nil && anthropic.IsOverloaded(err) {
			return nil, resilience.NewOverloadError(err, 0)
		}
		return resp, err
	})
	if err != nil {
		return nil, eris.Wrap(err, "extract: create message")
	}

	resp.Usage.LogCost(e.opts.Model, "extract "+c.Label)

	cands, err := parseCandidates(resp.Text())
	if err != nil {
		return nil, err
	}

	for i := range cands {
		if cands[i].URL == "" {
			cands[i].URL = sourceURL
		}
	}
	return cands, nil
}

// parseCandidates recovers the JSON array from a model response that may be
// wrapped in code fences or surrounded by stray prose.
func parseCandidates(text string) ([]model.RawCandidate, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, "[") {
		start := strings.Index(s, "[")
		end := strings.LastIndex(s, "]")
		if start < 0 || end <= start {
			return nil, eris.New("extract: no JSON array in response")
		}
		s = s[start : end+1]
	}

	var cands []model.RawCandidate
	if err := json.Unmarshal([]byte(s), &cands); err != nil {
		return nil, eris.Wrap(err, "extract: parse candidate array")
	}
	if len(cands) == 0 {
		return nil, eris.New("extract: empty candidate array")
	}
	return cands, nil
}
