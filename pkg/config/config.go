// pkg/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/opd-ai/go-broadside/pkg/validation"
)

// EnvPrefix is prepended to every environment override, e.g.
// BROADSIDE_ARENA_WIDTH or BROADSIDE_RULES_TIEBREAK.
const EnvPrefix = "BROADSIDE"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains configuration for a match
type GameConfig struct {
	Arena     ArenaConfig    `json:"arena" mapstructure:"arena"`
	Timing    TimingConfig   `json:"timing" mapstructure:"timing"`
	Movement  MovementConfig `json:"movement" mapstructure:"movement"`
	Weapons   WeaponConfig   `json:"weapons" mapstructure:"weapons"`
	Crafts    CraftsConfig   `json:"crafts" mapstructure:"crafts"`
	Obstacles ObstacleConfig `json:"obstacles" mapstructure:"obstacles"`
	Rules     RulesConfig    `json:"rules" mapstructure:"rules"`
}

// ArenaConfig sets the size of the playing field
type ArenaConfig struct {
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`
}

// TimingConfig sets the fixed simulation rates, in seconds
type TimingConfig struct {
	TimeStep         float64 `json:"timeStep" mapstructure:"timeStep"`
	DecisionInterval float64 `json:"decisionInterval" mapstructure:"decisionInterval"`
}

// MovementConfig sets how far a craft travels per half step
type MovementConfig struct {
	ForwardDistance float64 `json:"forwardDistance" mapstructure:"forwardDistance"`
}

// WeaponConfig contains broadside settings shared by both crafts
type WeaponConfig struct {
	ProjectileSpeed  float64 `json:"projectileSpeed" mapstructure:"projectileSpeed"`
	MaxReadiness     int     `json:"maxReadiness" mapstructure:"maxReadiness"`
	ProjectileRadius float64 `json:"projectileRadius" mapstructure:"projectileRadius"`
	DespawnMargin    float64 `json:"despawnMargin" mapstructure:"despawnMargin"`
}

// CraftConfig describes one craft at match start
type CraftConfig struct {
	Health  int     `json:"health" mapstructure:"health"`
	X       float64 `json:"x" mapstructure:"x"`
	Y       float64 `json:"y" mapstructure:"y"`
	Heading int     `json:"heading" mapstructure:"heading"`
	Radius  float64 `json:"radius" mapstructure:"radius"`
}

// CraftsConfig holds both sides
type CraftsConfig struct {
	Player   CraftConfig `json:"player" mapstructure:"player"`
	Opponent CraftConfig `json:"opponent" mapstructure:"opponent"`
}

// RockConfig places a single rock
type RockConfig struct {
	X      float64 `json:"x" mapstructure:"x"`
	Y      float64 `json:"y" mapstructure:"y"`
	Radius float64 `json:"radius" mapstructure:"radius"`
}

// ObstacleConfig controls rock placement. Explicit rocks are placed as
// given; Count more are scattered using Seed.
type ObstacleConfig struct {
	Count     int          `json:"count" mapstructure:"count"`
	MinRadius float64      `json:"minRadius" mapstructure:"minRadius"`
	MaxRadius float64      `json:"maxRadius" mapstructure:"maxRadius"`
	Seed      int64        `json:"seed" mapstructure:"seed"`
	Clearance float64      `json:"clearance" mapstructure:"clearance"`
	Rocks     []RockConfig `json:"rocks" mapstructure:"rocks"`
}

// RulesConfig contains combat rules
type RulesConfig struct {
	CollisionDamage        int    `json:"collisionDamage" mapstructure:"collisionDamage"`
	TieBreak               string `json:"tieBreak" mapstructure:"tieBreak"`
	OpponentObstaclePolicy string `json:"opponentObstaclePolicy" mapstructure:"opponentObstaclePolicy"`
}

// Extent returns the half size of the arena.
func (c *GameConfig) Extent() (x, y float64) {
	return c.Arena.Width / 2, c.Arena.Height / 2
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Arena: ArenaConfig{Width: 500, Height: 500},
		Timing: TimingConfig{
			TimeStep:         0.1,
			DecisionInterval: 1.0,
		},
		Movement: MovementConfig{ForwardDistance: 50},
		Weapons: WeaponConfig{
			ProjectileSpeed:  1000,
			MaxReadiness:     3,
			ProjectileRadius: 5,
			DespawnMargin:    50,
		},
		Crafts: CraftsConfig{
			Player:   CraftConfig{Health: 3, X: 100, Y: 0, Heading: 0, Radius: 20},
			Opponent: CraftConfig{Health: 5, X: -100, Y: 0, Heading: 4, Radius: 20},
		},
		Obstacles: ObstacleConfig{
			Count:     4,
			MinRadius: 15,
			MaxRadius: 40,
			Seed:      1,
			Clearance: 40,
			Rocks:     []RockConfig{},
		},
		Rules: RulesConfig{
			CollisionDamage:        1,
			TieBreak:               "lose",
			OpponentObstaclePolicy: "damage",
		},
	}
}

// newViper builds a viper instance seeded with the defaults and bound to
// BROADSIDE_ environment variables.
func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()

	v.SetDefault("arena.width", d.Arena.Width)
	v.SetDefault("arena.height", d.Arena.Height)

	v.SetDefault("timing.timeStep", d.Timing.TimeStep)
	v.SetDefault("timing.decisionInterval", d.Timing.DecisionInterval)

	v.SetDefault("movement.forwardDistance", d.Movement.ForwardDistance)

	v.SetDefault("weapons.projectileSpeed", d.Weapons.ProjectileSpeed)
	v.SetDefault("weapons.maxReadiness", d.Weapons.MaxReadiness)
	v.SetDefault("weapons.projectileRadius", d.Weapons.ProjectileRadius)
	v.SetDefault("weapons.despawnMargin", d.Weapons.DespawnMargin)

	for name, c := range map[string]CraftConfig{"player": d.Crafts.Player, "opponent": d.Crafts.Opponent} {
		v.SetDefault("crafts."+name+".health", c.Health)
		v.SetDefault("crafts."+name+".x", c.X)
		v.SetDefault("crafts."+name+".y", c.Y)
		v.SetDefault("crafts."+name+".heading", c.Heading)
		v.SetDefault("crafts."+name+".radius", c.Radius)
	}

	v.SetDefault("obstacles.count", d.Obstacles.Count)
	v.SetDefault("obstacles.minRadius", d.Obstacles.MinRadius)
	v.SetDefault("obstacles.maxRadius", d.Obstacles.MaxRadius)
	v.SetDefault("obstacles.seed", d.Obstacles.Seed)
	v.SetDefault("obstacles.clearance", d.Obstacles.Clearance)
	v.SetDefault("obstacles.rocks", d.Obstacles.Rocks)

	v.SetDefault("rules.collisionDamage", d.Rules.CollisionDamage)
	v.SetDefault("rules.tieBreak", d.Rules.TieBreak)
	v.SetDefault("rules.opponentObstaclePolicy", d.Rules.OpponentObstaclePolicy)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig builds a configuration from defaults, the JSON file at path
// (skipped when path is empty) and BROADSIDE_ environment overrides, in
// increasing precedence. The result is validated.
func LoadConfig(path string) (*GameConfig, error) {
	v := newViper()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := validation.ValidateConfigData(data); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		v.SetConfigType("json")
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	var config GameConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if config.Obstacles.Rocks == nil {
		config.Obstacles.Rocks = []RockConfig{}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return fmt.Errorf("cannot save nil config")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every section. Failures wrap ErrInvalidConfig.
func (c *GameConfig) Validate() error {
	type check struct {
		section string
		err     error
	}

	ex, ey := c.Extent()
	checks := []check{
		{"arena", validation.ValidateArena(c.Arena.Width, c.Arena.Height)},
		{"timing", validation.ValidateTimeStep("timeStep", c.Timing.TimeStep)},
		{"timing", validation.ValidateTimeStep("decisionInterval", c.Timing.DecisionInterval)},
		{"movement", validation.ValidatePositive("forwardDistance", c.Movement.ForwardDistance)},
		{"weapons", validation.ValidatePositive("projectileSpeed", c.Weapons.ProjectileSpeed)},
		{"weapons", validation.ValidateReadiness(c.Weapons.MaxReadiness)},
		{"weapons", validation.ValidatePositive("projectileRadius", c.Weapons.ProjectileRadius)},
		{"weapons", validation.ValidateNonNegative("despawnMargin", c.Weapons.DespawnMargin)},
		{"obstacles", validation.ValidateRockCount(c.Obstacles.Count)},
		{"obstacles", validation.ValidateNonNegative("clearance", c.Obstacles.Clearance)},
		{"rules", validation.ValidateTieBreak(c.Rules.TieBreak)},
		{"rules", validation.ValidatePolicy(c.Rules.OpponentObstaclePolicy)},
	}

	crafts := []struct {
		name  string
		craft CraftConfig
	}{{"player", c.Crafts.Player}, {"opponent", c.Crafts.Opponent}}
	for _, cc := range crafts {
		section := "crafts." + cc.name
		checks = append(checks,
			check{section, validation.ValidateHealth(cc.craft.Health)},
			check{section, validation.ValidateHeading(cc.craft.Heading)},
			check{section, validation.ValidatePositive("radius", cc.craft.Radius)},
		)
		if ex > 0 && ey > 0 {
			checks = append(checks, check{section, validation.ValidateSpawn(cc.craft.X, cc.craft.Y, ex, ey)})
		}
	}

	for _, check := range checks {
		if check.err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, check.section, check.err)
		}
	}

	if c.Obstacles.Count > 0 {
		if err := validation.ValidatePositive("minRadius", c.Obstacles.MinRadius); err != nil {
			return fmt.Errorf("%w: obstacles: %v", ErrInvalidConfig, err)
		}
		if c.Obstacles.MaxRadius < c.Obstacles.MinRadius {
			return fmt.Errorf("%w: obstacles: maxRadius %v below minRadius %v",
				ErrInvalidConfig, c.Obstacles.MaxRadius, c.Obstacles.MinRadius)
		}
	}
	for i, r := range c.Obstacles.Rocks {
		if err := validation.ValidateRock(r.X, r.Y, r.Radius, ex, ey); err != nil {
			return fmt.Errorf("%w: obstacles.rocks[%d]: %v", ErrInvalidConfig, i, err)
		}
	}
	if c.Rules.CollisionDamage < 0 {
		return fmt.Errorf("%w: rules: collisionDamage cannot be negative", ErrInvalidConfig)
	}

	return nil
}
