// Package validation checks configuration values before a match is built.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Limits on configuration input.
const (
	MaxConfigSize   = 64 * 1024 // 64KB max config file
	MaxArenaSize    = 100000
	MinTimeStep     = 0.001
	MaxTimeStep     = 10
	MaxHealth       = 1000
	MaxReadiness    = 100
	MaxRockCount    = 256
	MaxHeadingIndex = 7
)

// TieBreak names accepted for simultaneous destruction.
var TieBreaks = []string{"lose", "draw"}

// ObstaclePolicies names accepted for an opponent striking a rock.
var ObstaclePolicies = []string{"damage", "stun"}

// ValidateConfigData checks a raw config file against size and format constraints
func ValidateConfigData(data []byte) error {
	if len(data) > MaxConfigSize {
		return fmt.Errorf("config too large: %d bytes (max %d)", len(data), MaxConfigSize)
	}
	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON format")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateArena validates the arena dimensions
func ValidateArena(width, height float64) error {
	if !finite(width) || !finite(height) || width <= 0 || height <= 0 {
		return fmt.Errorf("invalid arena size %vx%v (must be positive)", width, height)
	}
	if width > MaxArenaSize || height > MaxArenaSize {
		return fmt.Errorf("arena too large: %vx%v (max %d)", width, height, MaxArenaSize)
	}
	return nil
}

// ValidateTimeStep validates a fixed simulation interval in seconds
func ValidateTimeStep(name string, seconds float64) error {
	if !finite(seconds) || seconds < MinTimeStep || seconds > MaxTimeStep {
		return fmt.Errorf("invalid %s: %v (must be between %v and %v seconds)", name, seconds, MinTimeStep, MaxTimeStep)
	}
	return nil
}

// ValidatePositive validates a strictly positive finite quantity
func ValidatePositive(name string, v float64) error {
	if !finite(v) || v <= 0 {
		return fmt.Errorf("invalid %s: %v (must be positive)", name, v)
	}
	return nil
}

// ValidateNonNegative validates a finite quantity that may be zero
func ValidateNonNegative(name string, v float64) error {
	if !finite(v) || v < 0 {
		return fmt.Errorf("invalid %s: %v (cannot be negative)", name, v)
	}
	return nil
}

// ValidateHealth validates a craft's starting health
func ValidateHealth(health int) error {
	if health < 1 || health > MaxHealth {
		return fmt.Errorf("invalid health: %d (must be 1-%d)", health, MaxHealth)
	}
	return nil
}

// ValidateReadiness validates the readiness needed to fire
func ValidateReadiness(max int) error {
	if max < 1 || max > MaxReadiness {
		return fmt.Errorf("invalid max readiness: %d (must be 1-%d)", max, MaxReadiness)
	}
	return nil
}

// ValidateHeading validates a starting heading index
func ValidateHeading(heading int) error {
	if heading < 0 || heading > MaxHeadingIndex {
		return fmt.Errorf("invalid heading: %d (must be 0-%d)", heading, MaxHeadingIndex)
	}
	return nil
}

// ValidateSpawn checks that a spawn point lies inside the arena
func ValidateSpawn(x, y, extentX, extentY float64) error {
	if !finite(x) || !finite(y) || math.Abs(x) > extentX || math.Abs(y) > extentY {
		return fmt.Errorf("spawn (%v, %v) outside arena [-%v, %v]x[-%v, %v]", x, y, extentX, extentX, extentY, extentY)
	}
	return nil
}

// ValidateRock checks that a rock is well formed and centered inside the arena
func ValidateRock(x, y, radius, extentX, extentY float64) error {
	if err := ValidatePositive("rock radius", radius); err != nil {
		return err
	}
	if err := ValidateSpawn(x, y, extentX, extentY); err != nil {
		return fmt.Errorf("rock: %w", err)
	}
	return nil
}

// ValidateRockCount validates the number of generated rocks
func ValidateRockCount(count int) error {
	if count < 0 || count > MaxRockCount {
		return fmt.Errorf("invalid rock count: %d (must be 0-%d)", count, MaxRockCount)
	}
	return nil
}

func oneOf(kind, value string, allowed []string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s: %q (must be one of %s)", kind, value, strings.Join(allowed, ", "))
}

// ValidateTieBreak validates the simultaneous-destruction rule
func ValidateTieBreak(rule string) error {
	return oneOf("tie break", rule, TieBreaks)
}

// ValidatePolicy validates the opponent-versus-rock policy
func ValidatePolicy(policy string) error {
	return oneOf("obstacle policy", policy, ObstaclePolicies)
}
