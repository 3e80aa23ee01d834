package discord

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"despot/internal/ai"
	"despot/internal/mind"
	"despot/internal/rank"
	"despot/internal/storage"
)

type stubProvider struct {
	out string
	err error
}

func (s *stubProvider) Generate(_ []ai.Message, _ ai.Options) (string, error) {
	return s.out, s.err
}

const stubReply = "Back to work, citizen."

func testPipeline(t *testing.T, classOut string, classErr error) *Pipeline {
	t.Helper()
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "despot.json"), nil)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	p := NewPipeline(
		store,
		mind.NewClassifier(&stubProvider{out: classOut, err: classErr}),
		mind.NewResponder(&stubProvider{out: stubReply}),
		mind.NewDetector(func() float64 { return 0.99 }),
		storage.NewCooldownGate(time.Millisecond),
		func() float64 { return 0 },
		"despot",
	)
	return p
}

func inbound(content string) Inbound {
	return Inbound{
		GuildID:    "g1",
		ChannelID:  "c1",
		AuthorID:   "u1",
		AuthorName: "u1",
		Content:    content,
	}
}

// noInsult is a classifier reply that flags nothing.
const noInsult = `{"is_insult":false,"targets":[],"severity":0}`

func TestWhitelistGateBlocksUnlistedChannel(t *testing.T) {
	p := testPipeline(t, noInsult, nil)
	if _, err := p.Store.AddWhitelistChannel("g1", "allowed"); err != nil {
		t.Fatalf("AddWhitelistChannel: %v", err)
	}

	out, err := p.Handle(inbound("hey despot"))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if out.Reply != "" {
		t.Fatalf("Reply = %q, want silence outside the whitelist", out.Reply)
	}

	in := inbound("hey despot")
	in.ChannelID = "allowed"
	out, err = p.Handle(in)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if out.Reply != stubReply {
		t.Fatalf("Reply = %q, want %q inside the whitelist", out.Reply, stubReply)
	}
}

func TestEmptyWhitelistAllowsEveryChannel(t *testing.T) {
	p := testPipeline(t, noInsult, nil)

	in := inbound("hey despot")
	in.ChannelID = "anything"
	out, err := p.Handle(in)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if out.Reply != stubReply {
		t.Fatalf("Reply = %q, want reply with empty whitelist", out.Reply)
	}
}

func TestCooldownSilencesRapidMessages(t *testing.T) {
	p := testPipeline(t, noInsult, nil)
	p.Cooldowns = storage.NewCooldownGate(time.Minute)

	out, err := p.Handle(inbound("hey despot"))
	if err != nil || out.Reply == "" {
		t.Fatalf("first message: (%q, %v), want a reply", out.Reply, err)
	}
	out, err = p.Handle(inbound("hey despot again"))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if out.Reply != "" {
		t.Fatalf("Reply = %q, want silence inside the cooldown", out.Reply)
	}
}

func TestIgnoredUserIsSilent(t *testing.T) {
	p := testPipeline(t, noInsult, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p.Now = func() time.Time { return now }

	if err := p.Store.SetIgnore("u1", now.Add(15*time.Minute)); err != nil {
		t.Fatalf("SetIgnore: %v", err)
	}
	out, err := p.Handle(inbound("hey despot"))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if out.Reply != "" {
		t.Fatalf("Reply = %q, want silence while ignored", out.Reply)
	}

	// After expiry the user is heard again.
	p.Now = func() time.Time { return now.Add(16 * time.Minute) }
	time.Sleep(5 * time.Millisecond)
	out, err = p.Handle(inbound("hey despot"))
	if err != nil || out.Reply != stubReply {
		t.Fatalf("after expiry: (%q, %v), want a reply", out.Reply, err)
	}
}

func TestInsultAtBotGetsReply(t *testing.T) {
	p := testPipeline(t, `{"is_insult":true,"targets":["bot"],"severity":3}`, nil)

	out, err := p.Handle(inbound("you useless machine"))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if out.Reply != stubReply {
		t.Fatalf("Reply = %q, want a comeback", out.Reply)
	}
}

func TestInsultAtOtherUserGetsReply(t *testing.T) {
	for _, level := range []rank.Level{rank.Citizen, rank.Supreme} {
		p := testPipeline(t, `{"is_insult":true,"targets":["user:42"],"severity":2}`, nil)
		in := inbound("what an idiot")
		in.MentionIDs = []string{"42"}
		in.TargetLevel = func(string) rank.Level { return level }

		out, err := p.Handle(in)
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if out.Reply != stubReply {
			t.Fatalf("target level %v: Reply = %q, want a reply", level, out.Reply)
		}
	}
}

func TestClassifierFailureFailsClosed(t *testing.T) {
	p := testPipeline(t, "", errors.New("endpoint down"))

	out, err := p.Handle(inbound("you useless machine"))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if out.Reply != "" {
		t.Fatalf("Reply = %q, want silence when classification is unavailable", out.Reply)
	}

	// The message was still recorded.
	mem, err := p.Store.EnsureUserMemory("u1")
	if err != nil {
		t.Fatalf("EnsureUserMemory: %v", err)
	}
	if len(mem.ShortMemory) != 1 {
		t.Fatalf("ShortMemory len = %d, want 1", len(mem.ShortMemory))
	}
}

func TestMentionAndReplyTrigger(t *testing.T) {
	p := testPipeline(t, noInsult, nil)

	in := inbound("what do you think")
	in.MentionsBot = true
	out, err := p.Handle(in)
	if err != nil || out.Reply != stubReply {
		t.Fatalf("mention: (%q, %v), want a reply", out.Reply, err)
	}

	time.Sleep(5 * time.Millisecond)
	in = inbound("and furthermore")
	in.RepliesToBot = true
	out, err = p.Handle(in)
	if err != nil || out.Reply != stubReply {
		t.Fatalf("reply-to-bot: (%q, %v), want a reply", out.Reply, err)
	}
}

func TestTriggerNameIsCaseInsensitive(t *testing.T) {
	p := testPipeline(t, noInsult, nil)

	out, err := p.Handle(inbound("hey DESPOT, report"))
	if err != nil || out.Reply != stubReply {
		t.Fatalf("(%q, %v), want a reply on the trigger name", out.Reply, err)
	}
}

func TestPlainMessageStaysSilentButExtractsFact(t *testing.T) {
	p := testPipeline(t, noInsult, nil)

	out, err := p.Handle(inbound("i like trains"))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if out.Reply != "" {
		t.Fatalf("Reply = %q, want silence for plain chatter", out.Reply)
	}

	mem, err := p.Store.EnsureUserMemory("u1")
	if err != nil {
		t.Fatalf("EnsureUserMemory: %v", err)
	}
	if len(mem.LongMemory) != 1 || mem.LongMemory[0] != "likes trains" {
		t.Fatalf("LongMemory = %v, want the extracted fact", mem.LongMemory)
	}
}

func TestAnnoyanceIgnoresCitizens(t *testing.T) {
	p := testPipeline(t, noInsult, nil)
	p.Detector = mind.NewDetector(func() float64 { return 0 })
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p.Now = func() time.Time { return now }

	for i := 0; i < 23; i++ {
		if err := p.Store.AppendShortMemory("u1", "u1: hi"); err != nil {
			t.Fatalf("AppendShortMemory: %v", err)
		}
	}

	out, err := p.Handle(inbound("hi"))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !out.SetIgnore {
		t.Fatal("burst history should trigger an ignore")
	}
	if out.Reply == "" {
		t.Fatal("ignore action should be announced")
	}

	ignored, err := p.Store.IsIgnored("u1", now)
	if err != nil || !ignored {
		t.Fatalf("IsIgnored = (%v, %v), want (true, nil)", ignored, err)
	}
}

func TestAnnoyanceSparesPrivilegedUsers(t *testing.T) {
	p := testPipeline(t, noInsult, nil)
	p.Detector = mind.NewDetector(func() float64 { return 0 })

	for i := 0; i < 23; i++ {
		if err := p.Store.AppendShortMemory("u1", "u1: hi"); err != nil {
			t.Fatalf("AppendShortMemory: %v", err)
		}
	}

	in := inbound("hi")
	in.AuthorLevel = rank.Commander
	out, err := p.Handle(in)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if out.SetIgnore {
		t.Fatal("privileged users must never be put on ignore")
	}
	if out.Reply != "" {
		t.Fatalf("Reply = %q, want silence", out.Reply)
	}
}
