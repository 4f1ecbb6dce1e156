package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	name := filepath.Join(t.TempDir(), "run.toml")
	text := `
program = "day2.txt"
ascii = true

[patch]
1 = 12
2 = 2
`
	assert.NoError(os.WriteFile(name, []byte(text), 0o644))

	cfg, err := LoadConfig(name)
	assert.NoError(err)
	assert.Equal("day2.txt", cfg.Program)
	assert.True(cfg.ASCII)
	assert.False(cfg.Verbose)

	patches, err := cfg.Patches()
	assert.NoError(err)
	assert.Equal(map[int64]int64{1: 12, 2: 2}, patches)
}

func TestLoadConfig_Errors(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.toml")
	assert.NoError(os.WriteFile(unknown, []byte("programme = \"x\"\n"), 0o644))
	_, err := LoadConfig(unknown)
	assert.ErrorContains(err, "programme")
	var keys ErrConfigKeys
	if assert.True(errors.As(err, &keys)) {
		assert.Equal(ErrConfigKeys{"programme"}, keys)
	}

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(err)

	cfg := Config{Patch: map[string]int64{"-4": 1}}
	_, err = cfg.Patches()
	assert.Equal(ErrPatchAddress("-4"), err)

	cfg = Config{Patch: map[string]int64{"x": 1}}
	_, err = cfg.Patches()
	assert.Equal(ErrPatchAddress("x"), err)
}

func TestPatchFlag(t *testing.T) {
	assert := assert.New(t)

	pf := patchFlag{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(pf, "set", "patch")

	assert.NoError(fs.Parse([]string{"-set", "1=12", "-set", "2 = -2"}))
	assert.Equal(patchFlag{"1": 12, "2": -2}, pf)

	assert.Equal(ErrPatchSyntax("12"), pf.Set("12"))
	assert.Equal(ErrPatchSyntax("1=x"), pf.Set("1=x"))
}

func TestConfig_Emulator(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{ASCII: true, Patch: map[string]int64{"1": 5, "2": 6}}
	emu, err := cfg.Emulator([]int64{1101, 0, 0, 7, 4, 7, 99, 0})
	assert.NoError(err)
	assert.True(emu.ASCII)
	assert.Equal(map[int64]int64{1: 5, 2: 6}, emu.Patch)

	var out strings.Builder
	emu.ASCII = false
	emu.Output = &out
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal("11\n", out.String())

	cfg = Config{Patch: map[string]int64{"noun": 12}}
	emu, err = cfg.Emulator([]int64{99})
	assert.Nil(emu)
	assert.Equal(ErrPatchAddress("noun"), err)
}
