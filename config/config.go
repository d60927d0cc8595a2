// Package config loads the engine's on-disk default configuration, a
// small TOML file read once at startup so the binary can be deployed
// with fixed defaults without a wrapping script replaying "setoption"
// lines on every boot.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/MatN23/rook64/search"
)

// File is the on-disk shape of the config file.
type File struct {
	HashMB         int    `toml:"hash_mb"`
	Threads        int    `toml:"threads"`
	OwnBook        bool   `toml:"own_book"`
	BookPath       string `toml:"book_path"`
	MultiPV        int    `toml:"multi_pv"`
	MoveOverheadMs int    `toml:"move_overhead_ms"`
}

// Load reads and parses the TOML file at path. A missing file is not
// an error: the caller should fall back to search.DefaultOptions.
func Load(path string) (File, error) {
	var f File
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return f, nil
	}
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return f, errors.Wrapf(err, "config: parsing %q", path)
	}
	return f, nil
}

// Options merges the file's values over the engine defaults, leaving
// defaults in place for any zero-valued field the file did not set.
func (f File) Options() search.Options {
	opts := search.DefaultOptions()
	if f.HashMB > 0 {
		opts.HashMB = f.HashMB
	}
	if f.Threads > 0 {
		opts.Threads = f.Threads
	}
	if f.MultiPV > 0 {
		opts.MultiPV = f.MultiPV
	}
	if f.MoveOverheadMs > 0 {
		opts.MoveOverheadMs = f.MoveOverheadMs
	}
	opts.OwnBook = f.OwnBook || opts.OwnBook
	return opts
}
