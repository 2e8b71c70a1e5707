// Package tokencount counts tokens for chat completion requests so that
// completion budgets can be sized per run instead of hardcoded.
package tokencount

import (
	"strings"
	"sync"

	"log/slog"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Counter provides thread-safe token counting for chat models.
type Counter struct {
	encodings map[string]*tiktoken.Tiktoken
	mu        sync.RWMutex
}

// NewCounter creates a new token counter.
func NewCounter() *Counter {
	return &Counter{encodings: make(map[string]*tiktoken.Tiktoken)}
}

// DefaultCounter is a process-wide shared counter.
var DefaultCounter = NewCounter()

func (c *Counter) encodingFor(model string) (*tiktoken.Tiktoken, error) {
	key := normalizeModelName(model)

	c.mu.RLock()
	if enc, ok := c.encodings[key]; ok {
		c.mu.RUnlock()
		return enc, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if enc, ok := c.encodings[key]; ok {
		return enc, nil
	}

	enc, err := tiktoken.EncodingForModel(key)
	if err != nil {
		// cl100k_base approximates most modern open-weight tokenizers
		slog.Debug("falling back to cl100k_base encoding",
			slog.String("model", model),
			slog.Any("error", err))
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}
	c.encodings[key] = enc
	return enc, nil
}

// normalizeModelName maps provider-prefixed model IDs (for example
// "meta-llama/llama-3.3-70b-instruct:free") onto tiktoken-known names.
func normalizeModelName(model string) string {
	model = strings.ToLower(model)
	if i := strings.LastIndexByte(model, '/'); i != -1 {
		model = model[i+1:]
	}
	model = strings.TrimSuffix(model, ":free")

	switch {
	case strings.Contains(model, "gpt-3.5"):
		return "gpt-3.5-turbo"
	case strings.Contains(model, "gpt-4"):
		return "gpt-4"
	default:
		// llama, mistral, qwen and friends tokenize close enough to gpt-4
		return "gpt-4"
	}
}

// CountTokens counts the tokens in text for the given model.
func (c *Counter) CountTokens(text, model string) (int, error) {
	enc, err := c.encodingFor(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// CountChatTokens counts the tokens of a two-message chat request including
// the per-message framing overhead OpenAI-compatible APIs charge for.
func (c *Counter) CountChatTokens(systemPrompt, userPrompt, model string) (int, error) {
	enc, err := c.encodingFor(model)
	if err != nil {
		return 0, err
	}

	// 3 tokens per message plus 1 for the role, plus 3 priming the reply.
	const perMessage, perRole, replyPrime = 3, 1, 3

	n := replyPrime
	for _, msg := range [][2]string{{"system", systemPrompt}, {"user", userPrompt}} {
		n += perMessage + perRole
		n += len(enc.Encode(msg[0], nil, nil))
		n += len(enc.Encode(msg[1], nil, nil))
	}
	return n, nil
}

// EstimateTokens is a cheap fallback when an encoding cannot be loaded,
// assuming roughly four bytes per token.
func EstimateTokens(text string) int {
	return len(text) / 4
}
