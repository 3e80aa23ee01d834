package mind

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"despot/internal/ai"
)

// Classification is the constrained result of the insult classifier.
type Classification struct {
	IsInsult bool     `json:"is_insult"`
	Targets  []string `json:"targets"`
	Severity int      `json:"severity"`
}

// TargetsBot reports whether the bot itself is among the targets.
func (c Classification) TargetsBot() bool {
	for _, t := range c.Targets {
		if t == "bot" {
			return true
		}
	}
	return false
}

// UserTargets returns the user IDs from "user:<id>" targets.
func (c Classification) UserTargets() []string {
	var ids []string
	for _, t := range c.Targets {
		if id, ok := strings.CutPrefix(t, "user:"); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// DefaultClassification is the conservative fallback: no insult, no targets.
func DefaultClassification() Classification {
	return Classification{Targets: []string{}}
}

const classifierPrompt = `You are a JSON-only classifier. Output ONLY JSON:
{ "is_insult": boolean, "targets": ["bot" or "user:<id>"], "severity": 0-5 }
Rules:
- Include "bot" if the message insults the bot or uses abusive words toward the bot name.
- Include "user:<id>" for mentioned users who are being insulted.
Return only valid JSON.`

// Classifier wraps the LLM endpoint as a single-shot insult classifier.
// Any transport or parse failure fails closed to the default classification;
// classification errors must never reach the end user.
type Classifier struct {
	provider ai.Provider
}

func NewClassifier(provider ai.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify sends text plus the mention list and parses the strict-JSON reply.
func (c *Classifier) Classify(text string, mentionIDs []string) Classification {
	mentions, _ := json.Marshal(mentionIDs)
	messages := []ai.Message{
		{Role: "system", Content: classifierPrompt},
		{Role: "user", Content: fmt.Sprintf("Message: %q\nMentions: %s", text, mentions)},
	}

	raw, err := c.provider.Generate(messages, ai.Options{Temperature: 0, MaxTokens: 200})
	if err != nil {
		log.Printf("[WARN] Classifier call failed: %v", err)
		classifierFailures.Inc()
		return DefaultClassification()
	}

	parsed, err := parseClassification(raw)
	if err != nil {
		log.Printf("[WARN] Classifier returned unparseable output: %v", err)
		classifierFailures.Inc()
		return DefaultClassification()
	}
	return parsed
}

// parseClassification tolerates code fences and surrounding chatter by
// extracting the outermost JSON object before unmarshalling.
func parseClassification(raw string) (Classification, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return DefaultClassification(), fmt.Errorf("no JSON object in %q", truncateForLog(raw, 80))
	}

	var c Classification
	if err := json.Unmarshal([]byte(raw[start:end+1]), &c); err != nil {
		return DefaultClassification(), err
	}
	if c.Targets == nil {
		c.Targets = []string{}
	}
	if c.Severity < 0 {
		c.Severity = 0
	}
	if c.Severity > 5 {
		c.Severity = 5
	}
	return c, nil
}

func truncateForLog(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
