package mind

import (
	"fmt"
	"log"
	"strings"

	"despot/internal/ai"
	"despot/internal/storage"
)

// FallbackReply is the in-character line used whenever the completion
// endpoint fails. The user-visible contract is "always get a reply".
const FallbackReply = "My imperial voice falters... try again later, citizen."

// Responder wraps the LLM endpoint as the persona voice. It embeds the user's
// long-term facts and recent history into the prompt and cleans the output.
type Responder struct {
	provider ai.Provider
	system   string
}

func NewResponder(provider ai.Provider) *Responder {
	return &Responder{provider: provider, system: personaSystem}
}

// Reply generates an in-character answer to content. It never returns an
// error; failures degrade to FallbackReply.
func (r *Responder) Reply(content string, mem *storage.UserMemory) string {
	long := "none"
	short := "none"
	if mem != nil {
		if len(mem.LongMemory) > 0 {
			long = strings.Join(mem.LongMemory, " | ")
		}
		if len(mem.ShortMemory) > 0 {
			short = strings.Join(mem.ShortMemory, " | ")
		}
	}

	userPrompt := fmt.Sprintf(`User message: %q
Long-term memory: %s
Short-term memory: %s
Respond in character. Do NOT use titles like "Supreme Leader" or "Commander" in the reply.
Keep it short, sarcastic, theatrical and fictional. Avoid referencing real historical figures or events.`,
		content, long, short)

	messages := []ai.Message{
		{Role: "system", Content: r.system},
		{Role: "user", Content: userPrompt},
	}

	out, err := r.provider.Generate(messages, ai.Options{Temperature: 0.8, MaxTokens: 220})
	if err != nil {
		log.Printf("[WARN] Responder call failed: %v", err)
		responderFallbacks.Inc()
		return FallbackReply
	}

	out = ai.CleanReply(out)
	if out == "" {
		responderFallbacks.Inc()
		return FallbackReply
	}
	return out
}
