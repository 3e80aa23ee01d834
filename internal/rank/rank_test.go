package rank

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"

	"despot/internal/storage"
)

func TestMemberLevel(t *testing.T) {
	cfg := &storage.GuildConfig{CommanderRoleID: "cmd", SupremeRoleID: "sup"}

	cases := []struct {
		name    string
		userID  string
		roles   []string
		cfg     *storage.GuildConfig
		ownerID string
		want    Level
	}{
		{"owner outranks everything", "u1", nil, cfg, "u1", Owner},
		{"supreme role", "u1", []string{"sup"}, cfg, "o", Supreme},
		{"supreme wins over commander", "u1", []string{"cmd", "sup"}, cfg, "o", Supreme},
		{"commander role", "u1", []string{"cmd"}, cfg, "o", Commander},
		{"no configured roles held", "u1", []string{"other"}, cfg, "o", Citizen},
		{"nil config", "u1", []string{"cmd"}, nil, "o", Citizen},
		{"unset role ids never match", "u1", []string{""}, &storage.GuildConfig{}, "o", Citizen},
	}

	for _, c := range cases {
		if got := MemberLevel(c.userID, c.roles, c.cfg, c.ownerID); got != c.want {
			t.Fatalf("%s: MemberLevel = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestTopRolePosition(t *testing.T) {
	roles := []*discordgo.Role{
		{ID: "a", Position: 3},
		{ID: "b", Position: 7},
		{ID: "c", Position: 5},
	}

	if got := TopRolePosition(roles, []string{"a", "c"}); got != 5 {
		t.Fatalf("TopRolePosition = %d, want 5", got)
	}
	if got := TopRolePosition(roles, nil); got != 0 {
		t.Fatalf("roleless member position = %d, want 0", got)
	}
}

func TestCanModerate(t *testing.T) {
	if err := CanModerate(Commander, 10, 2); !errors.Is(err, ErrNotSupreme) {
		t.Fatalf("commander invoker: err = %v, want ErrNotSupreme", err)
	}
	if err := CanModerate(Supreme, 2, 10); !errors.Is(err, ErrHierarchy) {
		t.Fatalf("outranked bot: err = %v, want ErrHierarchy", err)
	}
	if err := CanModerate(Supreme, 5, 5); !errors.Is(err, ErrHierarchy) {
		t.Fatalf("equal position: err = %v, want ErrHierarchy", err)
	}
	if err := CanModerate(Owner, 10, 2); err != nil {
		t.Fatalf("owner with higher bot role: err = %v, want nil", err)
	}
}

func TestLevelString(t *testing.T) {
	if Citizen.String() != "citizen" || Owner.String() != "owner" {
		t.Fatal("unexpected level names")
	}
}
