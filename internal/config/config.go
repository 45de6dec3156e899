// Package config loads the search core's tunable constants from a
// TOML file, the way FrankyGo's config package loads engine.toml via
// BurntSushi/toml, instead of hardcoding every pruning margin.
package config

import "github.com/BurntSushi/toml"

// Search holds the numeric knobs negamax and the driver read from
// config, so tuning them is a config edit rather than a recompile. The
// LMP table, the SEE pruning threshold, the +200 delta/futility margins
// in quiescence and negamax, and the null-move base reduction are
// constants in the engine package, not fields here.
type Search struct {
	HashMB                int `toml:"hash_mb"`
	Threads               int `toml:"threads"`
	AspirationDelta       int `toml:"aspiration_delta"`
	AspirationStartPly    int `toml:"aspiration_start_ply"`
	NullMoveMinDepth      int `toml:"null_move_min_depth"`
	RazorMarginPerPly     int `toml:"razor_margin_per_ply"`
	FutilityMarginBase    int `toml:"futility_margin_base"`
	ReverseFutilityMargin int `toml:"reverse_futility_margin"`
	LMRMinDepth           int `toml:"lmr_min_depth"`
	EmergencyBufferMS     int `toml:"emergency_buffer_ms"`
}

// Config is the top-level document; [search] is the only table today
// but the shape leaves room for a future [logging]/[uci] table
// without breaking existing files.
type Config struct {
	Search Search `toml:"search"`
}

// Default returns the tuning baked into the rest of the package's
// constants, used whenever no config file is supplied.
func Default() Config {
	return Config{Search: Search{
		HashMB:                64,
		Threads:               1,
		AspirationDelta:       25,
		AspirationStartPly:    5,
		NullMoveMinDepth:      3,
		RazorMarginPerPly:     300,
		FutilityMarginBase:    150,
		ReverseFutilityMargin: 90,
		LMRMinDepth:           3,
		EmergencyBufferMS:     50,
	}}
}

// Load reads and decodes a TOML config file, filling in Default()
// values for anything the file omits.
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
