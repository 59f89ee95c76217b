package main

import (
	"errors"
	"flag"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/omara/internal/db"
	"github.com/erazemk/omara/internal/store"
	"github.com/erazemk/omara/internal/wardrobe"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "omara.sqlite3", opts.dbPath)
	assert.Equal(t, ":8080", opts.addr)
	assert.Equal(t, "admin", opts.user)
	assert.Equal(t, wardrobe.DefaultConfig(), opts.wardrobe)
}

func TestParseFlagsShortAndDurations(t *testing.T) {
	opts, err := parseFlags([]string{"-d", "x.db", "-a", ":9000", "-laundry", "24h", "-sweep", "5m"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "x.db", opts.dbPath)
	assert.Equal(t, ":9000", opts.addr)
	assert.Equal(t, 24*time.Hour, opts.wardrobe.LaundryDuration)
	assert.Equal(t, 5*time.Minute, opts.wardrobe.SweepInterval)
}

func TestParseFlagsErrors(t *testing.T) {
	_, err := parseFlags([]string{"extra"}, io.Discard)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-sweep", "0s"}, io.Discard)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestAPIKey(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	_, err := apiKey(getenv)
	assert.ErrorIs(t, err, errNoAPIKey)

	env["API_KEY"] = "fallback"
	key, err := apiKey(getenv)
	require.NoError(t, err)
	assert.Equal(t, "fallback", key)

	env["GEMINI_API_KEY"] = "primary"
	key, _ = apiKey(getenv)
	assert.Equal(t, "primary", key)
}

func TestInitDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omara.sqlite3")

	password, err := initDatabase(path, "owner")
	require.NoError(t, err)
	assert.Len(t, password, 16)

	database := db.OpenTestFile(t, path)
	user, err := store.GetUserByUsername(t.Context(), database, "owner")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "owner", user.Username)
}

func TestGeneratePassword(t *testing.T) {
	a, err := generatePassword(16)
	require.NoError(t, err)
	b, _ := generatePassword(16)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	assert.False(t, strings.ContainsAny(a, " \t\n"))
}
