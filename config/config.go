package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

// PackBundle is a purchasable pack offer: count cards for price coins.
type PackBundle struct {
	Count int
	Price int64
}

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string `env:"DISCORD_TOKEN"`
	DiscordGuildID string `env:"DISCORD_GUILD_ID"`

	// Database configuration
	DatabaseURL string `env:"DATABASE_URL"`

	// Game configuration
	AdminIDs              []int64 `env:"ADMIN_IDS" envSeparator:","`
	PackCooldownMinutes   int     `env:"PACK_COOLDOWN_MINUTES" envDefault:"30"`
	FreePackSize          int     `env:"FREE_PACK_SIZE" envDefault:"5"`
	IncomeIntervalMinutes int     `env:"INCOME_INTERVAL_MINUTES" envDefault:"60"`

	// Shop bundles, parsed from SHOP_BUNDLES as "count:price,count:price,..."
	Bundles []PackBundle `env:"-"`

	ShopBundlesRaw string `env:"SHOP_BUNDLES"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	bundles, err := parseBundles(config.ShopBundlesRaw)
	if err != nil {
		return nil, err
	}
	config.Bundles = bundles

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// parseBundles parses "count:price" pairs, falling back to the default shop
// catalog when unset.
func parseBundles(raw string) ([]PackBundle, error) {
	if raw == "" {
		return []PackBundle{
			{Count: 2, Price: 20},
			{Count: 3, Price: 25},
			{Count: 10, Price: 60},
		}, nil
	}

	var bundles []PackBundle
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		count, price, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid shop bundle %q, expected count:price", part)
		}
		c, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || c <= 0 {
			return nil, fmt.Errorf("invalid bundle count %q", count)
		}
		p, err := strconv.ParseInt(strings.TrimSpace(price), 10, 64)
		if err != nil || p <= 0 {
			return nil, fmt.Errorf("invalid bundle price %q", price)
		}
		bundles = append(bundles, PackBundle{Count: c, Price: p})
	}
	if len(bundles) == 0 {
		return nil, fmt.Errorf("SHOP_BUNDLES is set but contains no bundles")
	}
	return bundles, nil
}

// PackCooldown returns the free pack cooldown as a duration.
func (c *Config) PackCooldown() time.Duration {
	return time.Duration(c.PackCooldownMinutes) * time.Minute
}

// IncomeInterval returns the passive income tick interval as a duration.
func (c *Config) IncomeInterval() time.Duration {
	return time.Duration(c.IncomeIntervalMinutes) * time.Minute
}

// IsAdmin reports whether the given Discord ID is a configured administrator.
func (c *Config) IsAdmin(discordID int64) bool {
	for _, id := range c.AdminIDs {
		if id == discordID {
			return true
		}
	}
	return false
}

// FindBundle returns the configured bundle with the given card count.
func (c *Config) FindBundle(count int) (PackBundle, bool) {
	for _, b := range c.Bundles {
		if b.Count == count {
			return b, true
		}
	}
	return PackBundle{}, false
}
