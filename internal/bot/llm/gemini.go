// Package llm is the language-service adapter: one Gemini call per reply,
// with every failure normalised into a user-visible Russian sentence. To the
// orchestrator a generation always succeeds and yields some string.
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/sophist-bot/server/internal/bot/model"
	logx "github.com/sophist-bot/server/pkg/logger"
)

// Safety configuration is fixed: the persona is allowed to be rude, so
// harassment and hate-speech are unblocked, while sexual and dangerous
// content keep the medium-and-above block.
var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
}

// Generator wraps a Gemini client configured once at startup. The client is
// shared read-only after construction.
type Generator struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGenerator(ctx context.Context, apiKey string, cfg model.GenerationConfig) (*Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logx.Error().Err(err).Msg("failed to create gemini client")
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Generator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Generate submits the prompt (plus an optional inline media part) and maps
// the outcome to a reply string. One shot, no retry.
func (g *Generator) Generate(ctx context.Context, prompt string, media *model.MediaPart) string {
	parts := []*genai.Part{{Text: prompt}}
	if media != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: media.MIME, Data: media.Data},
		})
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			Temperature:    genai.Ptr(g.temperature),
			SafetySettings: safetySettings,
		},
	)
	if err != nil {
		kind := classify(err)
		logx.Error().Err(err).Int("kind", int(kind)).Str("model", g.model).Msg("generation failed")
		return cannedReply(kind)
	}

	return shapeResponse(resp)
}

// shapeResponse turns a service response into the reply text, handling
// safety blocks and empty candidates.
func shapeResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return EmptyReply
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		logx.Warn().Str("reason", string(resp.PromptFeedback.BlockReason)).Msg("prompt blocked by safety filter")
		return blockedReply(string(resp.PromptFeedback.BlockReason))
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		logx.Warn().Msg("generation returned no text")
		return EmptyReply
	}
	return text
}
