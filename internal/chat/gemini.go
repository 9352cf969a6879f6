package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/rcliao/calmish/internal/model"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-1.5-flash"

// GeminiOptions configures a GeminiGenerator.
type GeminiOptions struct {
	APIKey          string
	Model           string
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

// DefaultGeminiOptions returns the companion's sampling defaults.
func DefaultGeminiOptions() GeminiOptions {
	return GeminiOptions{
		Model:           DefaultModel,
		Temperature:     0.7,
		TopP:            0.8,
		TopK:            40,
		MaxOutputTokens: 2048,
	}
}

// GeminiGenerator implements Generator on the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	opts   GeminiOptions
	logger *zap.Logger
}

// NewGeminiGenerator creates a generator. An empty API key is ErrUnavailable.
func NewGeminiGenerator(ctx context.Context, opts GeminiOptions, logger *zap.Logger) (*GeminiGenerator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{
		client: client,
		opts:   opts,
		logger: logger.With(zap.String("component", "gemini"), zap.String("model", opts.Model)),
	}, nil
}

func (g *GeminiGenerator) config(system string) *genai.GenerateContentConfig {
	safety := make([]*genai.SafetySetting, 0, 4)
	for _, c := range []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	} {
		safety = append(safety, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		})
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(g.opts.Temperature),
		TopP:              genai.Ptr(g.opts.TopP),
		TopK:              genai.Ptr(g.opts.TopK),
		MaxOutputTokens:   g.opts.MaxOutputTokens,
		SafetySettings:    safety,
	}
}

// contents converts the conversation log into genai turns, ending with msg.
func contents(history []model.Message, msg string) []*genai.Content {
	out := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Text, role))
	}
	return append(out, genai.NewContentFromText(msg, genai.RoleUser))
}

func (g *GeminiGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.opts.Model, contents(p.History, p.Message), g.config(p.System))
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ErrQuota, err)
		}
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt %s", ErrBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", ErrBlocked
	}
	g.logger.Debug("generated reply", zap.Int("candidates", len(resp.Candidates)))
	return resp.Text(), nil
}
