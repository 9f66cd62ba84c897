/*
Package config provides type-safe configuration extraction from map[string]any.

Config wraps a decoded YAML or JSON document and returns the caller's default
whenever a key is missing or holds a value of the wrong type. Nested sections
are reached with Sub:

	cfg, err := config.FromFile("pools.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	small := cfg.Sub("pools").Sub("small")
	capacity := small.Int("capacity", 256)

Numeric values decoded from JSON arrive as float64; Int accepts them only
when they have no fractional part.

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
