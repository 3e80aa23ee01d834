package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config holds every runtime setting. Missing required keys are fatal at
// startup; everything else has a workable default.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,notEmpty"`
	LLMAPIKey    string `env:"LLM_API_KEY,notEmpty"`

	LLMBaseURL string `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"llama-3.3-70b-versatile"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	StorePath    string `env:"STORE_PATH" envDefault:"data/despot.json"`
	MongoURI     string `env:"MONGO_URI"`
	MongoDB      string `env:"MONGO_DB" envDefault:"despot"`

	// WhitelistChannels seeds the whitelist of newly seen guilds.
	WhitelistChannels []string `env:"WHITELIST_CHANNELS" envSeparator:","`

	TriggerName      string `env:"TRIGGER_NAME" envDefault:"despot"`
	HealthAddr       string `env:"HEALTH_ADDR" envDefault:":3000"`
	RegisterCommands bool   `env:"REGISTER_COMMANDS" envDefault:"true"`
}

// New parses the environment. It terminates the process when a required
// variable is absent.
func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("[ERR] Config error: %v", err)
	}
	if cfg.StoreBackend == "mongo" && cfg.MongoURI == "" {
		log.Fatal("[ERR] MONGO_URI is required when STORE_BACKEND=mongo")
	}
	return cfg
}
