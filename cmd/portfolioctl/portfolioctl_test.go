package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/BradenHooton/portfolio/pkg/auth"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExport_JSON(t *testing.T) {
	out, _, err := run(t, "", "export", "--format", "json")
	require.NoError(t, err)

	var bundle map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &bundle))
	assert.Len(t, bundle, 8)
}

func TestExport_TypeScriptToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.ts")

	_, stderr, err := run(t, "", "export", "-f", "ts", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "// Profile Data Export\n"))
}

func TestExport_UnknownFormat(t *testing.T) {
	_, _, err := run(t, "", "export", "--format", "xml")
	assert.Error(t, err)
}

func TestRenderExport_Timestamp(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	out, err := renderExport("ts", now)
	require.NoError(t, err)
	assert.Contains(t, out, "// Generated: 2025-03-14T09:26:53.589Z\n")
}

func TestHashPassword(t *testing.T) {
	out, _, err := run(t, "Corr3ct-Horse-Battery\n", "hash-password")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, pkgauth.ComparePassword(hash, "Corr3ct-Horse-Battery"))
}

func TestHashPassword_RejectsWeak(t *testing.T) {
	_, _, err := run(t, "admin123\n", "hash-password")
	assert.Error(t, err)

	out, stderr, err := run(t, "admin123\n", "hash-password", "--force")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning")
	assert.NoError(t, pkgauth.ComparePassword(strings.TrimSpace(out), "admin123"))
}

func TestHashPassword_Empty(t *testing.T) {
	_, _, err := run(t, "", "hash-password")
	assert.Error(t, err)
}

func TestMigrate_MemoryDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	_, _, err := run(t, "", "migrate")
	assert.Error(t, err)
}

func TestMigrate_SQLite(t *testing.T) {
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "portfolio.db"))

	out, _, err := run(t, "", "migrate", "--driver", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite store is up to date")
}
