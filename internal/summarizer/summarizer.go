package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/yt-notes/internal/pipeline"
)

const summaryPrompt = `You are an expert note taker. Using the timestamped transcript of a video segment below, write DETAILED study notes in English.

Requirements:
- Start with a one-sentence overview of what the segment is about
- List ALL key points in the order they appear, citing the [HH:MM:SS] timestamp
- Explain each point, including tips, warnings and examples mentioned
- If the speaker uses another language, translate it but keep technical terms as spoken in parentheses
- Use markdown: headings, bullet points, bold for key terms
- Finish with a "Key takeaways" section

Transcript:
---
%s
---`

// ErrNoKeys is returned when no Gemini API key is configured.
var ErrNoKeys = errors.New("no Gemini API keys configured")

// Summarize renders the transcript as [HH:MM:SS] lines and asks Gemini for notes.
// An empty transcript yields an empty summary without calling the model.
func (s *implSummarizer) Summarize(ctx context.Context, transcript []pipeline.TranscriptChunk) (string, error) {
	if len(transcript) == 0 {
		return "", nil
	}
	if len(s.apiKeys) == 0 {
		return "", ErrNoKeys
	}

	s.logger.Info(ctx, "Summarizing %d transcript chunks with %s", len(transcript), s.model)

	summary, err := s.callGemini(ctx, renderTranscript(transcript))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

func renderTranscript(transcript []pipeline.TranscriptChunk) string {
	var b strings.Builder
	for _, c := range transcript {
		fmt.Fprintf(&b, "[%s] %s\n", c.StartTime, c.Text)
	}
	return b.String()
}

// callGemini sends the transcript to Gemini and returns the summary text.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, transcript)

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		idx, key := s.key()

		text, err := s.generate(ctx, key, s.model, prompt)
		if err != nil {
			if isQuotaError(err) {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				s.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) key() (int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentKey, s.apiKeys[s.currentKey]
}

// rotateKey moves past idx unless another caller already did.
func (s *implSummarizer) rotateKey(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey == idx {
		s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func generateGemini(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
