package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

// FileStore keeps every record in a keshon/datastore JSON file. Keys are
// namespaced: user:<id>, ignore:<id>, guild:<id>.
type FileStore struct {
	ds               *datastore.DataStore
	defaultWhitelist []string
}

// NewFileStore opens (or creates) the backing file. defaultWhitelist seeds the
// whitelist of guild configs created lazily on first access.
func NewFileStore(filePath string, defaultWhitelist []string) (*FileStore, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &FileStore{ds: ds, defaultWhitelist: defaultWhitelist}, nil
}

func (s *FileStore) Close() error {
	return s.ds.Close()
}

func userKey(id string) string   { return "user:" + id }
func ignoreKey(id string) string { return "ignore:" + id }
func guildKey(id string) string  { return "guild:" + id }

// decode remarshals the datastore's untyped value into out. The datastore
// hands back map[string]any after a reload, so a round-trip is required.
func decode(data any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshalling data: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error unmarshalling record: %w", err)
	}
	return nil
}

func (s *FileStore) EnsureUserMemory(userID string) (*UserMemory, error) {
	data, exists := s.ds.Get(userKey(userID))
	if !exists {
		mem := &UserMemory{UserID: userID, LongMemory: []string{}, ShortMemory: []string{}}
		s.ds.Add(userKey(userID), mem)
		return mem, nil
	}

	var mem UserMemory
	if err := decode(data, &mem); err != nil {
		return nil, err
	}
	if mem.LongMemory == nil {
		mem.LongMemory = []string{}
	}
	if mem.ShortMemory == nil {
		mem.ShortMemory = []string{}
	}
	return &mem, nil
}

func (s *FileStore) AppendShortMemory(userID, line string) error {
	mem, err := s.EnsureUserMemory(userID)
	if err != nil {
		return err
	}
	mem.ShortMemory = append(mem.ShortMemory, line)
	if len(mem.ShortMemory) > ShortMemoryLimit {
		mem.ShortMemory = mem.ShortMemory[len(mem.ShortMemory)-ShortMemoryLimit:]
	}
	s.ds.Add(userKey(userID), mem)
	return nil
}

func (s *FileStore) AddLongFact(userID, fact string) (bool, error) {
	mem, err := s.EnsureUserMemory(userID)
	if err != nil {
		return false, err
	}
	if containsFold(mem.LongMemory, fact) {
		return false, nil
	}
	mem.LongMemory = append(mem.LongMemory, fact)
	s.ds.Add(userKey(userID), mem)
	return true, nil
}

func (s *FileStore) RemoveLongFact(userID, fact string) (bool, error) {
	mem, err := s.EnsureUserMemory(userID)
	if err != nil {
		return false, err
	}
	kept := mem.LongMemory[:0]
	removed := false
	for _, f := range mem.LongMemory {
		if f == fact {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if !removed {
		return false, nil
	}
	mem.LongMemory = kept
	s.ds.Add(userKey(userID), mem)
	return true, nil
}

func (s *FileStore) ClearLongFacts(userID string) error {
	mem, err := s.EnsureUserMemory(userID)
	if err != nil {
		return err
	}
	mem.LongMemory = []string{}
	s.ds.Add(userKey(userID), mem)
	return nil
}

func (s *FileStore) IsIgnored(userID string, now time.Time) (bool, error) {
	data, exists := s.ds.Get(ignoreKey(userID))
	if !exists {
		return false, nil
	}
	var entry IgnoreEntry
	if err := decode(data, &entry); err != nil {
		return false, err
	}
	if !now.Before(entry.IgnoreUntil) {
		s.ds.Delete(ignoreKey(userID))
		return false, nil
	}
	return true, nil
}

func (s *FileStore) SetIgnore(userID string, until time.Time) error {
	s.ds.Add(ignoreKey(userID), &IgnoreEntry{UserID: userID, IgnoreUntil: until})
	return nil
}

func (s *FileStore) EnsureGuildConfig(guildID string) (*GuildConfig, error) {
	data, exists := s.ds.Get(guildKey(guildID))
	if !exists {
		cfg := &GuildConfig{
			GuildID:   guildID,
			Whitelist: append([]string{}, s.defaultWhitelist...),
		}
		s.ds.Add(guildKey(guildID), cfg)
		return cfg, nil
	}

	var cfg GuildConfig
	if err := decode(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Whitelist == nil {
		cfg.Whitelist = []string{}
	}
	return &cfg, nil
}

func (s *FileStore) SetGuildRole(guildID string, kind RoleKind, roleID string) error {
	cfg, err := s.EnsureGuildConfig(guildID)
	if err != nil {
		return err
	}
	switch kind {
	case RoleCommander:
		cfg.CommanderRoleID = roleID
	case RoleSupreme:
		cfg.SupremeRoleID = roleID
	default:
		return fmt.Errorf("unknown role kind %q", kind)
	}
	s.ds.Add(guildKey(guildID), cfg)
	return nil
}

func (s *FileStore) AddWhitelistChannel(guildID, channelID string) (bool, error) {
	cfg, err := s.EnsureGuildConfig(guildID)
	if err != nil {
		return false, err
	}
	if contains(cfg.Whitelist, channelID) {
		return false, nil
	}
	cfg.Whitelist = append(cfg.Whitelist, channelID)
	s.ds.Add(guildKey(guildID), cfg)
	return true, nil
}

func (s *FileStore) RemoveWhitelistChannel(guildID, channelID string) (bool, error) {
	cfg, err := s.EnsureGuildConfig(guildID)
	if err != nil {
		return false, err
	}
	kept := cfg.Whitelist[:0]
	removed := false
	for _, id := range cfg.Whitelist {
		if id == channelID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		return false, nil
	}
	cfg.Whitelist = kept
	s.ds.Add(guildKey(guildID), cfg)
	return true, nil
}
