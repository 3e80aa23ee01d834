package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collUserMemory  = "user_memory"
	collIgnores     = "ignore_entries"
	collGuildConfig = "guild_config"

	mongoOpTimeout = 5 * time.Second
)

// MongoStore keeps the three record families in MongoDB collections. Every
// operation is a single read-modify-write against one document; no
// transactions are needed.
type MongoStore struct {
	client           *mongo.Client
	db               *mongo.Database
	defaultWhitelist []string
}

// NewMongoStore connects and pings before returning; an unreachable store is a
// startup failure, not something to limp along with.
func NewMongoStore(uri, dbName string, defaultWhitelist []string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{
		client:           client,
		db:               client.Database(dbName),
		defaultWhitelist: defaultWhitelist,
	}, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), mongoOpTimeout)
}

func (s *MongoStore) EnsureUserMemory(userID string) (*UserMemory, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var mem UserMemory
	err := s.db.Collection(collUserMemory).FindOne(ctx, bson.M{"user_id": userID}).Decode(&mem)
	if errors.Is(err, mongo.ErrNoDocuments) {
		mem = UserMemory{UserID: userID, LongMemory: []string{}, ShortMemory: []string{}}
		if _, err := s.db.Collection(collUserMemory).InsertOne(ctx, mem); err != nil {
			return nil, err
		}
		return &mem, nil
	}
	if err != nil {
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

func (s *MongoStore) saveUserMemory(mem *UserMemory) error {
	ctx, cancel := opCtx()
	defer cancel()
	_, err := s.db.Collection(collUserMemory).ReplaceOne(
		ctx,
		bson.M{"user_id": mem.UserID},
		mem,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) AppendShortMemory(userID, line string) error {
	mem, err := s.EnsureUserMemory(userID)
	if err != nil {
		return err
	}
	mem.ShortMemory = append(mem.ShortMemory, line)
	if len(mem.ShortMemory) > ShortMemoryLimit {
		mem.ShortMemory = mem.ShortMemory[len(mem.ShortMemory)-ShortMemoryLimit:]
	}
	return s.saveUserMemory(mem)
}

func (s *MongoStore) AddLongFact(userID, fact string) (bool, error) {
	mem, err := s.EnsureUserMemory(userID)
	if err != nil {
		return false, err
	}
	if containsFold(mem.LongMemory, fact) {
		return false, nil
	}
	mem.LongMemory = append(mem.LongMemory, fact)
	if err := s.saveUserMemory(mem); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MongoStore) RemoveLongFact(userID, fact string) (bool, error) {
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
	if err := s.saveUserMemory(mem); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MongoStore) ClearLongFacts(userID string) error {
	mem, err := s.EnsureUserMemory(userID)
	if err != nil {
		return err
	}
	mem.LongMemory = []string{}
	return s.saveUserMemory(mem)
}

func (s *MongoStore) IsIgnored(userID string, now time.Time) (bool, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var entry IgnoreEntry
	err := s.db.Collection(collIgnores).FindOne(ctx, bson.M{"user_id": userID}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !now.Before(entry.IgnoreUntil) {
		_, _ = s.db.Collection(collIgnores).DeleteOne(ctx, bson.M{"user_id": userID})
		return false, nil
	}
	return true, nil
}

func (s *MongoStore) SetIgnore(userID string, until time.Time) error {
	ctx, cancel := opCtx()
	defer cancel()
	_, err := s.db.Collection(collIgnores).ReplaceOne(
		ctx,
		bson.M{"user_id": userID},
		IgnoreEntry{UserID: userID, IgnoreUntil: until},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) EnsureGuildConfig(guildID string) (*GuildConfig, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var cfg GuildConfig
	err := s.db.Collection(collGuildConfig).FindOne(ctx, bson.M{"guild_id": guildID}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		cfg = GuildConfig{GuildID: guildID, Whitelist: append([]string{}, s.defaultWhitelist...)}
		if _, err := s.db.Collection(collGuildConfig).InsertOne(ctx, cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if cfg.Whitelist == nil {
		cfg.Whitelist = []string{}
	}
	return &cfg, nil
}

func (s *MongoStore) saveGuildConfig(cfg *GuildConfig) error {
	ctx, cancel := opCtx()
	defer cancel()
	_, err := s.db.Collection(collGuildConfig).ReplaceOne(
		ctx,
		bson.M{"guild_id": cfg.GuildID},
		cfg,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) SetGuildRole(guildID string, kind RoleKind, roleID string) error {
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
	return s.saveGuildConfig(cfg)
}

func (s *MongoStore) AddWhitelistChannel(guildID, channelID string) (bool, error) {
	cfg, err := s.EnsureGuildConfig(guildID)
	if err != nil {
		return false, err
	}
	if contains(cfg.Whitelist, channelID) {
		return false, nil
	}
	cfg.Whitelist = append(cfg.Whitelist, channelID)
	if err := s.saveGuildConfig(cfg); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MongoStore) RemoveWhitelistChannel(guildID, channelID string) (bool, error) {
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
	if err := s.saveGuildConfig(cfg); err != nil {
		return false, err
	}
	return true, nil
}
