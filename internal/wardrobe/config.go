package wardrobe

import "time"

// Default policy values.
const (
	DefaultLaundryDuration = 48 * time.Hour
	DefaultSweepInterval   = time.Hour
)

// Config holds the lifecycle policy.
type Config struct {
	// LaundryDuration is how long a worn item stays in laundry before the
	// sweep returns it.
	LaundryDuration time.Duration
	// SweepInterval is the period of the background reversion sweep.
	SweepInterval time.Duration
}

// DefaultConfig returns the default lifecycle configuration.
func DefaultConfig() Config {
	return Config{
		LaundryDuration: DefaultLaundryDuration,
		SweepInterval:   DefaultSweepInterval,
	}
}

// withDefaults replaces unset or negative fields with the defaults.
func (c Config) withDefaults() Config {
	if c.LaundryDuration <= 0 {
		c.LaundryDuration = DefaultLaundryDuration
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = DefaultSweepInterval
	}
	return c
}
