package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassifyStructuredAPIErrors(t *testing.T) {
	cases := []struct {
		code int
		want errorKind
	}{
		{400, kindInvalidKey},
		{401, kindInvalidKey},
		{403, kindInvalidKey},
		{429, kindQuota},
		{404, kindModelNotFound},
		{500, kindServer},
		{503, kindServer},
	}
	for _, tc := range cases {
		err := fmt.Errorf("call failed: %w", genai.APIError{Code: tc.code, Message: "x"})
		if got := classify(err); got != tc.want {
			t.Fatalf("classify(code %d) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestClassifyDeadline(t *testing.T) {
	err := fmt.Errorf("generate: %w", context.DeadlineExceeded)
	assert.Equal(t, kindTimeout, classify(err))
}

func TestClassifyBySubstring(t *testing.T) {
	cases := []struct {
		msg  string
		want errorKind
	}{
		{"API key not valid. Please pass a valid API key.", kindInvalidKey},
		{"googleapi: Error: RESOURCE_EXHAUSTED", kindQuota},
		{"Candidate was blocked due to SAFETY", kindSafety},
		{"models/gemini-x is not found", kindModelNotFound},
		{"rpc error: code = Unavailable desc = service temporarily unavailable", kindServer},
		{"The model is overloaded", kindServer},
		{"net/http: request timed out", kindTimeout},
		{"совершенно непонятная ошибка", kindUnknown},
	}
	for _, tc := range cases {
		if got := classify(errors.New(tc.msg)); got != tc.want {
			t.Fatalf("classify(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestCannedReplyAlwaysNonEmpty(t *testing.T) {
	for kind := kindInvalidKey; kind <= kindUnknown; kind++ {
		assert.NotEmpty(t, cannedReply(kind))
	}
}

func TestShapeResponseBlockReason(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
			BlockReason: genai.BlockedReasonSafety,
		},
	}
	got := shapeResponse(resp)
	assert.Contains(t, got, string(genai.BlockedReasonSafety))
}

func TestShapeResponseEmpty(t *testing.T) {
	assert.Equal(t, EmptyReply, shapeResponse(nil))
	assert.Equal(t, EmptyReply, shapeResponse(&genai.GenerateContentResponse{}))
}

func TestShapeResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "  ответ  "}}},
		}},
	}
	assert.Equal(t, "ответ", shapeResponse(resp))
}
