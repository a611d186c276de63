package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/slingshot/vmath"
)

// Default physics constants
const (
	DefaultGravitationalConstant = 5.0
	DefaultEnergyLoss            = 0.9
	DefaultMinGravityDistance    = 1.0
)

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("invalid physics config")

// Config holds the physics constants passed into every step
type Config struct {
	// G scales inverse-square attraction
	G float64
	// EnergyLoss multiplies velocity after a bounce, in [0, 1)
	EnergyLoss float64
	// MinGravityDistance clamps pair distance in the gravity formula
	MinGravityDistance float64
}

// DefaultConfig returns the stock constants
func DefaultConfig() Config {
	return Config{
		G:                  DefaultGravitationalConstant,
		EnergyLoss:         DefaultEnergyLoss,
		MinGravityDistance: DefaultMinGravityDistance,
	}
}

// Validate checks ranges
func (c Config) Validate() error {
	if !vmath.IsFinite(c.G) || c.G < 0 {
		return fmt.Errorf("%w: gravitational constant %v must be >= 0", ErrInvalidConfig, c.G)
	}
	if !vmath.IsFinite(c.EnergyLoss) || c.EnergyLoss < 0 || c.EnergyLoss >= 1 {
		return fmt.Errorf("%w: energy loss %v must be in [0, 1)", ErrInvalidConfig, c.EnergyLoss)
	}
	if !vmath.IsFinite(c.MinGravityDistance) || c.MinGravityDistance <= 0 {
		return fmt.Errorf("%w: min gravity distance %v must be > 0", ErrInvalidConfig, c.MinGravityDistance)
	}
	return nil
}
