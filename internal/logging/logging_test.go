// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "taxchat.log")

	logger, closer, err := Setup(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Error().Str("endpoint", "/api/chat").Msg("chat request failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "/api/chat", entry["endpoint"])
	assert.Contains(t, entry, "time")
}

func TestSetup_DebugFlagWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxchat.log")

	logger, closer, err := Setup(Options{Level: "error", File: path, Debug: true})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestSetup_NoFileDiscards(t *testing.T) {
	logger, closer, err := Setup(Options{})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestSetup_BadLevel(t *testing.T) {
	_, _, err := Setup(Options{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}
