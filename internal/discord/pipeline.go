package discord

import (
	"fmt"
	"log"
	"strings"
	"time"

	"despot/internal/mind"
	"despot/internal/rank"
	"despot/internal/storage"
)

// Inbound is a transport-neutral view of one chat message. The bot adapter
// fills it from a discordgo event; tests fill it directly.
type Inbound struct {
	GuildID    string
	ChannelID  string
	AuthorID   string
	AuthorName string
	Content    string

	MentionIDs   []string
	MentionsBot  bool
	RepliesToBot bool

	AuthorLevel rank.Level
	// TargetLevel resolves another user's hierarchy level at use time. May be
	// nil, in which case every target counts as citizen.
	TargetLevel func(userID string) rank.Level
}

// Outcome is what the pipeline decided: an optional reply and whether an
// ignore entry was created. An empty Reply means deliberate silence.
type Outcome struct {
	Reply     string
	SetIgnore bool
}

// Pipeline evaluates each inbound message in strict order, short-circuiting
// on the first branch that produces a response.
type Pipeline struct {
	Store      storage.Store
	Classifier *mind.Classifier
	Responder  *mind.Responder
	Detector   *mind.Detector
	Cooldowns  *storage.CooldownGate

	// Rand samples [0,1); injectable for deterministic tests.
	Rand func() float64
	// Now is the clock; injectable for ignore-expiry tests.
	Now func() time.Time

	TriggerName    string
	IgnoreDuration time.Duration
}

// NewPipeline wires a pipeline with production tuning.
func NewPipeline(store storage.Store, classifier *mind.Classifier, responder *mind.Responder,
	detector *mind.Detector, cooldowns *storage.CooldownGate, rnd func() float64, triggerName string) *Pipeline {
	return &Pipeline{
		Store:          store,
		Classifier:     classifier,
		Responder:      responder,
		Detector:       detector,
		Cooldowns:      cooldowns,
		Rand:           rnd,
		Now:            time.Now,
		TriggerName:    triggerName,
		IgnoreDuration: 15 * time.Minute,
	}
}

// Handle runs the decision pipeline. Store failures propagate; LLM failures
// never do (the wrappers degrade internally).
func (p *Pipeline) Handle(in Inbound) (Outcome, error) {
	messagesSeen.Inc()

	cfg, err := p.Store.EnsureGuildConfig(in.GuildID)
	if err != nil {
		return Outcome{}, fmt.Errorf("guild config: %w", err)
	}

	// 1. Whitelist gate: empty list means every channel is allowed.
	if len(cfg.Whitelist) > 0 && !containsString(cfg.Whitelist, in.ChannelID) {
		return Outcome{}, nil
	}

	// 2. Cooldown gate.
	if !p.Cooldowns.Allow(in.AuthorID) {
		return Outcome{}, nil
	}

	// 3. Ignore gate.
	ignored, err := p.Store.IsIgnored(in.AuthorID, p.Now())
	if err != nil {
		return Outcome{}, fmt.Errorf("ignore check: %w", err)
	}
	if ignored {
		return Outcome{}, nil
	}

	// 4. Record into short memory; silently attempt fact extraction.
	line := in.AuthorName + ": " + in.Content
	if err := p.Store.AppendShortMemory(in.AuthorID, line); err != nil {
		return Outcome{}, fmt.Errorf("short memory: %w", err)
	}
	if fact, ok := mind.ExtractFact(in.Content); ok {
		if _, err := p.Store.AddLongFact(in.AuthorID, fact); err != nil {
			log.Printf("[WARN] Fact insertion failed for %s: %v", in.AuthorID, err)
		}
	}

	// 5. Classification (fails closed inside the wrapper).
	classification := p.Classifier.Classify(in.Content, in.MentionIDs)

	// 6. Annoyance heuristics. Privileged users are never put on ignore.
	if in.AuthorLevel == rank.Citizen {
		mem, err := p.Store.EnsureUserMemory(in.AuthorID)
		if err != nil {
			return Outcome{}, fmt.Errorf("user memory: %w", err)
		}
		if p.Detector.ShouldIgnore(mem.ShortMemory) {
			if err := p.Store.SetIgnore(in.AuthorID, p.Now().Add(p.IgnoreDuration)); err != nil {
				return Outcome{}, fmt.Errorf("set ignore: %w", err)
			}
			ignoresSet.Inc()
			return Outcome{Reply: mind.PickLine(mind.IgnoreLines, p.Rand()), SetIgnore: true}, nil
		}
	}

	// 7. Insult aimed at the bot.
	if classification.IsInsult && classification.TargetsBot() {
		return p.respond(in, in.Content)
	}

	// 8. Insult aimed at other users: defend the protected, mock the rest.
	if classification.IsInsult {
		for _, uid := range classification.UserTargets() {
			level := rank.Citizen
			if in.TargetLevel != nil {
				level = in.TargetLevel(uid)
			}
			var prompt string
			if level >= rank.Commander {
				prompt = fmt.Sprintf("Someone insulted a protected user: <@%s> — %s", uid, in.Content)
			} else {
				prompt = fmt.Sprintf("Someone insulted <@%s>: %s", uid, in.Content)
			}
			return p.respond(in, prompt)
		}
	}

	// 9. Mention, reply-to-bot, or trigger name.
	if in.MentionsBot || in.RepliesToBot ||
		strings.Contains(strings.ToLower(in.Content), strings.ToLower(p.TriggerName)) {
		return p.respond(in, in.Content)
	}

	// 10. Silence.
	return Outcome{}, nil
}

func (p *Pipeline) respond(in Inbound, prompt string) (Outcome, error) {
	mem, err := p.Store.EnsureUserMemory(in.AuthorID)
	if err != nil {
		return Outcome{}, fmt.Errorf("user memory: %w", err)
	}
	reply := p.Responder.Reply(prompt, mem)
	repliesSent.Inc()
	return Outcome{Reply: reply}, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
