package pool

import (
	"fmt"

	"github.com/randalmurphal/typedevent/pkg/typedevent/config"
)

// ClassConfig sizes one manager.
type ClassConfig struct {
	// BlockSize is the size of every block in bytes.
	BlockSize int
	// Capacity is the number of blocks.
	Capacity int
}

// Config sizes every manager of a Registry.
type Config struct {
	Small ClassConfig
	Large ClassConfig
}

// DefaultConfig fits every built-in event type with room to spare.
var DefaultConfig = Config{
	Small: ClassConfig{BlockSize: 128, Capacity: 256},
	Large: ClassConfig{BlockSize: 512, Capacity: 32},
}

// For returns the settings for class c.
func (c Config) For(class Class) ClassConfig {
	if class == ClassLarge {
		return c.Large
	}
	return c.Small
}

// Validate rejects non-positive sizes and capacities.
func (c Config) Validate() error {
	for _, class := range Classes() {
		cc := c.For(class)
		if cc.BlockSize <= 0 || cc.Capacity <= 0 {
			return fmt.Errorf("%w: %s block_size=%d capacity=%d",
				ErrInvalidConfig, class, cc.BlockSize, cc.Capacity)
		}
	}
	return nil
}

// ConfigFrom reads pool sizing from a config document:
//
//	pools:
//	  small: {block_size: 128, capacity: 256}
//	  large: {block_size: 512, capacity: 32}
//
// Missing keys fall back to DefaultConfig.
func ConfigFrom(c config.Config) Config {
	pools := c.Sub("pools")
	small := pools.Sub(ClassSmall.String())
	large := pools.Sub(ClassLarge.String())

	return Config{
		Small: ClassConfig{
			BlockSize: small.Int("block_size", DefaultConfig.Small.BlockSize),
			Capacity:  small.Int("capacity", DefaultConfig.Small.Capacity),
		},
		Large: ClassConfig{
			BlockSize: large.Int("block_size", DefaultConfig.Large.BlockSize),
			Capacity:  large.Int("capacity", DefaultConfig.Large.Capacity),
		},
	}
}
