package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaye/deskbook/internal/core/task"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(dataDir, "does-not-exist.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, []string{"Home", "Office"}, cfg.Contacts.Groups)
	assert.Equal(t, filepath.Join(dataDir, "database.txt"), cfg.ContactsFile())
	assert.Equal(t, filepath.Join(dataDir, "tasks.txt"), cfg.TasksFile())
	assert.Equal(t, filepath.Join(dataDir, "users.txt"), cfg.AccountsFile())
	assert.Equal(t, filepath.Join(dataDir, "transactions.txt"), cfg.TransactionsFile())
	assert.Equal(t, "contacts_export.csv", cfg.Contacts.Export)
	assert.Equal(t, string(task.SortByID), cfg.Tasks.DefaultSort)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dataDir := t.TempDir()
	configPath := filepath.Join(dataDir, "config.yaml")

	content := `
theme: gruvbox
contacts:
  groups: [Family, Work, Gym]
tasks:
  default_sort: deadline
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath, dataDir)
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, []string{"Family", "Work", "Gym"}, cfg.Contacts.Groups)
	assert.Equal(t, "deadline", cfg.Tasks.DefaultSort)

	// unset values fall back to defaults
	assert.Equal(t, filepath.Join(dataDir, "database.txt"), cfg.ContactsFile())
	assert.Equal(t, filepath.Join(dataDir, "users.txt"), cfg.AccountsFile())
}

func TestLoad_InvalidYAML(t *testing.T) {
	dataDir := t.TempDir()
	configPath := filepath.Join(dataDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("theme: [not: valid"), 0o644))

	_, err := Load(configPath, dataDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_AbsoluteStorePath(t *testing.T) {
	dataDir := t.TempDir()
	configPath := filepath.Join(dataDir, "config.yaml")
	abs := filepath.Join(dataDir, "elsewhere", "contacts.txt")

	content := "contacts:\n  file: " + abs + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath, dataDir)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.ContactsFile())
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Helper()
		cfg := DefaultConfig()
		cfg.DataDir = t.TempDir()
		return &cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, valid(t).Validate())
	})

	t.Run("missing data dir", func(t *testing.T) {
		cfg := valid(t)
		cfg.DataDir = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("unknown theme", func(t *testing.T) {
		cfg := valid(t)
		cfg.Theme = "solarized"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown theme")
	})

	t.Run("empty group list", func(t *testing.T) {
		cfg := valid(t)
		cfg.Contacts.Groups = []string{}
		require.Error(t, cfg.Validate())
	})

	t.Run("blank group name", func(t *testing.T) {
		cfg := valid(t)
		cfg.Contacts.Groups = []string{"Home", "  "}
		require.Error(t, cfg.Validate())
	})

	t.Run("case-colliding groups", func(t *testing.T) {
		cfg := valid(t)
		cfg.Contacts.Groups = []string{"Home", "HOME"}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "collide")
	})

	t.Run("bad sort key", func(t *testing.T) {
		cfg := valid(t)
		cfg.Tasks.DefaultSort = "priority"
		require.Error(t, cfg.Validate())
	})

	t.Run("colliding store files", func(t *testing.T) {
		cfg := valid(t)
		cfg.Ledger.TransactionsFile = cfg.Ledger.AccountsFile
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "distinct")
	})
}
