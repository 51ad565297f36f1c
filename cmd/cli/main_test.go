package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex/internal/auth"
	"pokedex/pkg/logging"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSeedCommand(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("POKEDEX_DB_PATH", filepath.Join(dir, "data", "cli.db"))

	seed := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(seed, []byte(`[
		{"id": 1, "name": "bulbasaur", "types": [{"slot": 1, "type": {"name": "grass", "url": ""}}]},
		{"id": 4, "name": "charmander"}
	]`), 0o644))

	out, err := run(t, "seed", "--file", seed)
	require.NoError(t, err)
	assert.Equal(t, "seeded 2 records\n", out)
}

func TestTokenCommand(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("POKEDEX_JWT_SECRET", "cli-secret")

	out, err := run(t, "token", "--ttl", "5m")
	require.NoError(t, err)

	tokens := auth.TokenService{Secret: []byte("cli-secret"), Issuer: "pokedex"}
	claims, err := tokens.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, auth.OperatorSubject, claims.Subject)
}

func TestImportRequiresArg(t *testing.T) {
	_, err := run(t, "import")
	assert.Error(t, err)
}

func TestVerboseFlagLowersLogLevel(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("POKEDEX_DB_PATH", filepath.Join(dir, "cli.db"))

	prev := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(prev) })

	_, err := run(t, "migrate", "-v")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
