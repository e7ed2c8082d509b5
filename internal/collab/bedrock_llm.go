package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// bedrockRequest mirrors the Anthropic Messages request shape Bedrock's
// InvokeModel API expects, the same wire format the teacher's
// internal/agent/bedrock_agent.go builds for its chat agent.
type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	System           string           `json:"system,omitempty"`
	Messages         []bedrockMessage `json:"messages"`
	Temperature      float64          `json:"temperature,omitempty"`
}

type bedrockMessage struct {
	Role    string               `json:"role"`
	Content []bedrockContentBlock `json:"content"`
}

type bedrockContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type bedrockResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// BedrockLLMClient implements LLMClient over AWS Bedrock's InvokeModel API,
// grounded on the teacher's internal/agent/bedrock_agent.go BedrockAgent.
type BedrockLLMClient struct {
	client  *bedrockruntime.Client
	modelID string
}

// NewBedrockLLMClient loads the default AWS config for region and builds a
// Bedrock client. modelID defaults to Claude 3 Sonnet when empty.
func NewBedrockLLMClient(ctx context.Context, modelID string) (*BedrockLLMClient, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("collab: load aws config: %w", err)
	}
	if modelID == "" {
		modelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	}
	return &BedrockLLMClient{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
	}, nil
}

// Complete sends a single-turn request and returns Claude's text response.
func (b *BedrockLLMClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody, err := json.Marshal(bedrockRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        4000,
		System:           systemPrompt,
		Messages: []bedrockMessage{
			{Role: "user", Content: []bedrockContentBlock{{Type: "text", Text: userPrompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("collab: marshal bedrock request: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        reqBody,
	})
	if err != nil {
		return "", fmt.Errorf("collab: bedrock invoke: %w", err)
	}

	var resp bedrockResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("collab: parse bedrock response: %w", err)
	}

	var text string
	for _, c := range resp.Content {
		if c.Type == "text" {
			text += c.Text
		}
	}
	return text, nil
}

var _ LLMClient = (*BedrockLLMClient)(nil)
