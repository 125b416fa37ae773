package driven

// PromptAnswer names the grounded answer template. It must contain the
// {context} and {query} placeholders.
const PromptAnswer = "answer"

// PromptStore serves the templates the responder fills in.
type PromptStore interface {
	// Load returns the template called name. Stores fall back to a
	// built-in default rather than fail for a known name.
	Load(name string) (string, error)

	// Reload drops cached templates.
	Reload()
}
