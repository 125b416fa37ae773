package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/logger"
)

// LLMErrorMessage replaces the answer whenever the LLM call fails.
const LLMErrorMessage = "Sorry, there was an issue with the LLM provider."

// DefaultAnswerPrompt is used when no prompt store is configured
// or the store fails to load the template.
const DefaultAnswerPrompt = "Answer the user query based on the following context:\n{context}\n\nUser: {query}\nAnswer:"

// contextSeparator joins retrieved chunks inside the prompt.
const contextSeparator = "\n---\n"

// Responder turns a question and its context into a single LLM call.
type Responder struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	opts    driven.GenerateOptions
}

// NewResponder creates a responder. prompts may be nil.
func NewResponder(llm driven.LLMService, prompts driven.PromptStore) *Responder {
	return &Responder{llm: llm, prompts: prompts}
}

// WithOptions sets the generation options passed to every call.
func (r *Responder) WithOptions(opts driven.GenerateOptions) *Responder {
	r.opts = opts
	return r
}

// Respond asks the LLM to answer query from docs. It never fails:
// any provider error is logged and the apology text is returned instead.
func (r *Responder) Respond(ctx context.Context, query string, docs []string) string {
	prompt := BuildPrompt(r.template(), query, docs)

	answer, err := r.llm.Generate(ctx, prompt, r.opts)
	if err != nil {
		logger.Error("llm %s: %v", r.llm.ModelName(), err)
		return LLMErrorMessage
	}
	return answer
}

func (r *Responder) template() string {
	if r.prompts == nil {
		return DefaultAnswerPrompt
	}
	tmpl, err := r.prompts.Load(driven.PromptAnswer)
	if err != nil || strings.TrimSpace(tmpl) == "" {
		if err != nil {
			logger.Warn("load prompt %s: %v", driven.PromptAnswer, err)
		}
		return DefaultAnswerPrompt
	}
	return tmpl
}

// BuildPrompt fills the {context} and {query} placeholders of tmpl.
func BuildPrompt(tmpl, query string, docs []string) string {
	return strings.NewReplacer(
		"{context}", strings.Join(docs, contextSeparator),
		"{query}", query,
	).Replace(tmpl)
}
