package utils

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	HTTPAddr   string
	GRPCAddr   string
	SyncAddr   string
	CORSOrigin string
}

// DevJWTSecret signs tokens when POKEDEX_JWT_SECRET is unset. It is public,
// so anyone can mint tokens against a server running with it.
const DevJWTSecret = "dev-secret-change-me"

type AuthConfig struct {
	JWTSecret       string
	DevSecret       bool // JWTSecret is DevJWTSecret
	JWTIssuer       string
	JWTDuration     time.Duration
	OperatorKey     string
	OperatorKeyHash string
}

type AssetConfig struct {
	Dir          string
	PublicPrefix string
	FetchTimeout time.Duration
}

type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Load reads .env files, then binds viper to POKEDEX_* environment
// variables and an optional pokedex.yaml. Safe to call more than once.
func Load() {
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}

	viper.SetEnvPrefix("POKEDEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if cfg := os.Getenv("POKEDEX_CONFIG"); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.SetConfigName("pokedex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".pokedex"))
		}
	}
	// missing config file is fine; env + defaults still apply
	_ = viper.ReadInConfig()
}

func setDefaults() {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	viper.SetDefault("db.path", filepath.Join(home, ".pokedex", "data.db"))
	viper.SetDefault("db.busy_timeout_ms", 5000)

	viper.SetDefault("http.addr", ":3000")
	viper.SetDefault("grpc.addr", ":50051")
	viper.SetDefault("sync.addr", ":7070")
	viper.SetDefault("cors.origin", "*")

	viper.SetDefault("assets.dir", "uploads")
	viper.SetDefault("assets.public_prefix", "/images")
	viper.SetDefault("assets.fetch_timeout", 10*time.Second)

	viper.SetDefault("upstream.base_url", "https://pokeapi.co/api/v2")
	viper.SetDefault("upstream.timeout", 15*time.Second)

	viper.SetDefault("jwt.issuer", "pokedex")
	viper.SetDefault("jwt.ttl", 24*time.Hour)
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		HTTPAddr:   viper.GetString("http.addr"),
		GRPCAddr:   viper.GetString("grpc.addr"),
		SyncAddr:   viper.GetString("sync.addr"),
		CORSOrigin: viper.GetString("cors.origin"),
	}
}

func LoadAuthConfig() AuthConfig {
	secret := viper.GetString("jwt.secret")
	if secret == "" {
		secret = DevJWTSecret
	}

	ttl := viper.GetDuration("jwt.ttl")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return AuthConfig{
		JWTSecret:       secret,
		DevSecret:       secret == DevJWTSecret,
		JWTIssuer:       viper.GetString("jwt.issuer"),
		JWTDuration:     ttl,
		OperatorKey:     viper.GetString("operator.key"),
		OperatorKeyHash: viper.GetString("operator.key_hash"),
	}
}

func LoadAssetConfig() AssetConfig {
	timeout := viper.GetDuration("assets.fetch_timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return AssetConfig{
		Dir:          viper.GetString("assets.dir"),
		PublicPrefix: strings.TrimRight(viper.GetString("assets.public_prefix"), "/"),
		FetchTimeout: timeout,
	}
}

func LoadUpstreamConfig() UpstreamConfig {
	timeout := viper.GetDuration("upstream.timeout")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return UpstreamConfig{
		BaseURL: strings.TrimRight(viper.GetString("upstream.base_url"), "/"),
		Timeout: timeout,
	}
}
