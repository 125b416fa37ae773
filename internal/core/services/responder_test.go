package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(DefaultAnswerPrompt, "What does it cost?", []string{"Plan A is $10.", "Plan B is $20."})

	assert.Equal(t,
		"Answer the user query based on the following context:\n"+
			"Plan A is $10.\n---\nPlan B is $20.\n\n"+
			"User: What does it cost?\nAnswer:",
		prompt)
}

func TestResponder_Respond(t *testing.T) {
	llm := &mockLLMService{response: "It costs $10."}
	r := NewResponder(llm, nil)

	answer := r.Respond(context.Background(), "price?", []string{"Plan A is $10."})

	assert.Equal(t, "It costs $10.", answer)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Plan A is $10.")
	assert.Contains(t, llm.prompts[0], "User: price?")
}

func TestResponder_Respond_ErrorBecomesApology(t *testing.T) {
	r := NewResponder(&mockLLMService{generateErr: errors.New("401")}, nil)

	answer := r.Respond(context.Background(), "q", []string{"ctx"})

	assert.Equal(t, LLMErrorMessage, answer)
}

func TestResponder_Respond_PromptStore(t *testing.T) {
	t.Run("custom template", func(t *testing.T) {
		llm := &mockLLMService{response: "ok"}
		r := NewResponder(llm, &mockPromptStore{prompt: "C={context} Q={query}"})

		r.Respond(context.Background(), "why", []string{"because"})

		assert.Equal(t, []string{"C=because Q=why"}, llm.prompts)
	})

	t.Run("load error falls back", func(t *testing.T) {
		llm := &mockLLMService{response: "ok"}
		r := NewResponder(llm, &mockPromptStore{loadErr: errors.New("denied")})

		r.Respond(context.Background(), "why", []string{"because"})

		require.Len(t, llm.prompts, 1)
		assert.Contains(t, llm.prompts[0], "Answer the user query")
	})

	t.Run("blank template falls back", func(t *testing.T) {
		llm := &mockLLMService{response: "ok"}
		r := NewResponder(llm, &mockPromptStore{prompt: "  \n"})

		r.Respond(context.Background(), "why", []string{"because"})

		require.Len(t, llm.prompts, 1)
		assert.Contains(t, llm.prompts[0], "Answer the user query")
	})
}
