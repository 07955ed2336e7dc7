package config

import (
	"fmt"
	"os"

	"github.com/oninepa/k-yayo-backend/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config is the typed application configuration. Every field is explicit;
// settings are never mutated through string key paths.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	CORS     CORSConfig     `yaml:"cors"`
	Admin    AdminConfig    `yaml:"admin"`
	Points   PointsConfig   `yaml:"points"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`
	// GatewayKey authenticates the external auth gateway on /auth/session.
	GatewayKey string `yaml:"gateway_key"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
	Enabled  bool   `yaml:"enabled"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"` // seconds
	RefreshIn int    `yaml:"refresh_in"` // seconds
}

type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// AdminConfig carries identity policy injected at startup. AdminEmails seeds
// the ADMIN role when those accounts first authenticate; it is consulted only
// during provisioning, never at authorization time.
type AdminConfig struct {
	OwnerEmail  string   `yaml:"owner_email"`
	AdminEmails []string `yaml:"admin_emails"`
}

// AccrualRate is a tiered earn rate: the first TierCount occurrences of an
// activity earn FirstRate each, later ones AfterRate each.
type AccrualRate struct {
	FirstRate float64 `yaml:"first_rate"`
	AfterRate float64 `yaml:"after_rate"`
}

// PointsConfig tunes the points engine.
type PointsConfig struct {
	Post                AccrualRate `yaml:"post"`
	Comment             AccrualRate `yaml:"comment"`
	Reply               AccrualRate `yaml:"reply"`
	TierCount           int         `yaml:"tier_count"`
	NicknameChangeCost  float64     `yaml:"nickname_change_cost"`
	ReactionThreshold   int         `yaml:"reaction_threshold"`
	ReactionAwardPoints float64     `yaml:"reaction_award_points"`
	OpenWriteAreas      []string    `yaml:"open_write_areas"`
}

// CatalogConfig points at the navigation catalog file.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Load reads a yaml config file and applies env overrides for secrets.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config 읽기 실패 (%s): %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config 파싱 실패 (%s): %w", path, err)
	}

	// Secrets from env win over yaml
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("GATEWAY_API_KEY"); v != "" {
		cfg.Server.GatewayKey = v
	}

	return cfg, nil
}

// Default returns the built-in defaults; Load overlays the yaml file on top.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080, Env: "local"},
		Database: DatabaseConfig{
			Host: "127.0.0.1", Port: 3306, User: "kyayo", Name: "kyayo",
		},
		Redis: RedisConfig{Host: "127.0.0.1", Port: 6379, PoolSize: 10},
		JWT:   JWTConfig{ExpiresIn: 3600, RefreshIn: 86400 * 7},
		Points: PointsConfig{
			Post:                AccrualRate{FirstRate: 0.1, AfterRate: 0.05},
			Comment:             AccrualRate{FirstRate: 0.05, AfterRate: 0.02},
			Reply:               AccrualRate{FirstRate: 0.02, AfterRate: 0.01},
			TierCount:           10,
			NicknameChangeCost:  10,
			ReactionThreshold:   100,
			ReactionAwardPoints: 1,
			OpenWriteAreas:      []string{"k-community/free/board"},
		},
		Catalog: CatalogConfig{Path: "configs/navigation.yaml"},
	}
}

// OpenWriteAreaIDs converts the configured open areas to AreaIDs.
func (c *PointsConfig) OpenWriteAreaIDs() []domain.AreaID {
	areas := make([]domain.AreaID, len(c.OpenWriteAreas))
	for i, a := range c.OpenWriteAreas {
		areas[i] = domain.AreaID(a)
	}
	return areas
}

// LoadCatalog reads the navigation catalog yaml file.
func LoadCatalog(path string) ([]domain.NavItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("navigation catalog 읽기 실패 (%s): %w", path, err)
	}
	var catalog struct {
		Navigations []domain.NavItem `yaml:"navigations"`
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("navigation catalog 파싱 실패 (%s): %w", path, err)
	}
	return catalog.Navigations, nil
}
