package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/ameyarj/chima-ads/internal/config"
	"github.com/ameyarj/chima-ads/models"
)

// ScriptGenerator produces an ad script from scraped product data.
type ScriptGenerator interface {
	GenerateAdScript(ctx context.Context, product *models.ProductData) (*models.AdScript, error)
}

// NewGenerator selects the provider implementation for the configured tag.
// Unknown tags are rejected here, at startup, not per request.
func NewGenerator(cfg *config.Config) (ScriptGenerator, error) {
	switch cfg.LLMProvider {
	case "openai":
		return newOpenAIGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.LLMProvider)
	}
}

// adScriptResponse is the structured output for the script generation call
type adScriptResponse struct {
	Hook         string   `json:"hook" jsonschema_description:"Attention-grabbing opening line (6-10 words)"`
	Problem      string   `json:"problem" jsonschema_description:"Problem this product solves (12-18 words)"`
	Solution     string   `json:"solution" jsonschema_description:"How the product solves it (15-25 words)"`
	Benefits     []string `json:"benefits" jsonschema_description:"Three short benefit statements (5-8 words each)"`
	CallToAction string   `json:"callToAction" jsonschema_description:"Strong call to action (8-12 words)"`
	Duration     int      `json:"duration" jsonschema_description:"Target video duration in seconds, always 30"`
}

// GenerateSchema generates a JSON schema for structured outputs
func GenerateSchema[T any]() interface{} {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

// adScriptSchema is the cached schema
var adScriptSchema = GenerateSchema[adScriptResponse]()

type openAIGenerator struct {
	client openai.Client
	model  string
}

func newOpenAIGenerator(cfg *config.Config) *openAIGenerator {
	opts := []option.RequestOption{option.WithAPIKey(cfg.LLMAPIKey)}
	if cfg.LLMBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLMBaseURL))
	}
	return &openAIGenerator{
		client: openai.NewClient(opts...),
		model:  cfg.LLMModel,
	}
}

// GenerateAdScript calls the chat completions API with JSON schema enforcement
// and a strict word budget so the spoken script fits a 30 second video.
func (g *openAIGenerator) GenerateAdScript(ctx context.Context, product *models.ProductData) (*models.AdScript, error) {
	features := "Not specified"
	if len(product.Features) > 0 {
		features = strings.Join(product.Features, ", ")
	}

	prompt := fmt.Sprintf(`Create a compelling 30-second video ad script for this product:

Product: %s
Description: %s
Price: %s
Features: %s

IMPORTANT: Create a script that will last approximately 25-30 seconds when spoken. Total word count should be 70-90 words.
Make it engaging and conversational while maintaining energy throughout.`,
		product.Title, product.Description, orDefault(product.Price, "Not specified"), features)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "ad_script",
		Description: openai.String("A structured video ad script"),
		Schema:      adScriptSchema,
		Strict:      openai.Bool(true),
	}

	chatCompletion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are an expert copywriter specializing in video advertisements. Always respond with valid JSON only."),
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(g.model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(chatCompletion.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	rawResponse := chatCompletion.Choices[0].Message.Content
	if rawResponse == "" {
		return nil, fmt.Errorf("OpenAI returned empty response. Finish reason: %s", chatCompletion.Choices[0].FinishReason)
	}

	var scriptResp adScriptResponse
	if err := json.Unmarshal([]byte(rawResponse), &scriptResp); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAI JSON response: %w", err)
	}

	if scriptResp.Duration <= 0 {
		scriptResp.Duration = 30
	}

	return &models.AdScript{
		Hook:         scriptResp.Hook,
		Problem:      scriptResp.Problem,
		Solution:     scriptResp.Solution,
		Benefits:     scriptResp.Benefits,
		CallToAction: scriptResp.CallToAction,
		Duration:     scriptResp.Duration,
	}, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
