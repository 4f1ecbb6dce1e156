package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/intcode/emulator"
)

// Config is the run configuration, read from a TOML file and overridden by
// command line flags.
type Config struct {
	Program  string           `toml:"program"`  // Comma separated listing.
	Assembly string           `toml:"assembly"` // Assembly source.
	Input    string           `toml:"input"`
	Output   string           `toml:"output"`
	ASCII    bool             `toml:"ascii"`
	Verbose  bool             `toml:"verbose"`
	Dump     bool             `toml:"dump"`
	Language string           `toml:"language"`
	Patch    map[string]int64 `toml:"patch"` // Cell address to value.
}

// LoadConfig decodes a TOML configuration file.
func LoadConfig(name string) (cfg Config, err error) {
	md, err := toml.DecodeFile(name, &cfg)
	if err != nil {
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make(ErrConfigKeys, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = keys
		return
	}

	return
}

// Patches returns the patch table keyed by address.
func (cfg *Config) Patches() (patches map[int64]int64, err error) {
	patches = make(map[int64]int64, len(cfg.Patch))
	for key, value := range cfg.Patch {
		var addr int64
		addr, err = strconv.ParseInt(key, 10, 64)
		if err != nil || addr < 0 {
			err = ErrPatchAddress(key)
			return
		}
		patches[addr] = value
	}

	return
}

// Emulator creates an emulator for prog with the configured mode and patches.
func (cfg *Config) Emulator(prog []int64) (emu *emulator.Emulator, err error) {
	patches, err := cfg.Patches()
	if err != nil {
		return
	}

	emu = emulator.NewEmulator(prog)
	emu.Verbose = cfg.Verbose
	emu.ASCII = cfg.ASCII
	emu.Patch = patches

	return
}

// patchFlag collects repeated -set addr=value flags.
type patchFlag map[string]int64

func (pf patchFlag) String() string {
	var parts []string
	for addr, value := range pf {
		parts = append(parts, fmt.Sprintf("%v=%v", addr, value))
	}
	return strings.Join(parts, ",")
}

func (pf patchFlag) Set(text string) (err error) {
	addr, value, ok := strings.Cut(text, "=")
	if !ok {
		return ErrPatchSyntax(text)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return ErrPatchSyntax(text)
	}
	pf[strings.TrimSpace(addr)] = v
	return
}
