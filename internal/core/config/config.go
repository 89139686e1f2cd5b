// Package config handles configuration loading and validation for deskbook.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkaye/deskbook/internal/core/styles"
	"github.com/mkaye/deskbook/internal/core/task"
)

// Config holds the application configuration.
type Config struct {
	Theme    string         `yaml:"theme"`
	Contacts ContactsConfig `yaml:"contacts"`
	Tasks    TasksConfig    `yaml:"tasks"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// ContactsConfig configures the contact book.
type ContactsConfig struct {
	// File is the contacts file, relative to the data directory unless
	// absolute.
	File string `yaml:"file"`
	// Groups are the allowed group names in their canonical spelling.
	Groups []string `yaml:"groups"`
	// Export is the default CSV export path, relative to the working
	// directory unless absolute.
	Export string `yaml:"export"`
}

// TasksConfig configures the to-do list.
type TasksConfig struct {
	File        string `yaml:"file"`
	DefaultSort string `yaml:"default_sort"` // id, created, deadline
}

// LedgerConfig configures the income and expense tracker.
type LedgerConfig struct {
	AccountsFile     string `yaml:"accounts_file"`
	TransactionsFile string `yaml:"transactions_file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: styles.DefaultTheme,
		Contacts: ContactsConfig{
			File:   "database.txt",
			Groups: []string{"Home", "Office"},
			Export: "contacts_export.csv",
		},
		Tasks: TasksConfig{
			File:        "tasks.txt",
			DefaultSort: string(task.SortByID),
		},
		Ledger: LedgerConfig{
			AccountsFile:     "users.txt",
			TransactionsFile: "transactions.txt",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Contacts.File == "" {
		c.Contacts.File = defaults.Contacts.File
	}
	if c.Contacts.Groups == nil {
		c.Contacts.Groups = defaults.Contacts.Groups
	}
	if c.Contacts.Export == "" {
		c.Contacts.Export = defaults.Contacts.Export
	}
	if c.Tasks.File == "" {
		c.Tasks.File = defaults.Tasks.File
	}
	if c.Tasks.DefaultSort == "" {
		c.Tasks.DefaultSort = defaults.Tasks.DefaultSort
	}
	if c.Ledger.AccountsFile == "" {
		c.Ledger.AccountsFile = defaults.Ledger.AccountsFile
	}
	if c.Ledger.TransactionsFile == "" {
		c.Ledger.TransactionsFile = defaults.Ledger.TransactionsFile
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q: available themes are %s", c.Theme, strings.Join(styles.ThemeNames(), ", "))
	}

	if len(c.Contacts.Groups) == 0 {
		return fmt.Errorf("contacts.groups must list at least one group")
	}
	seen := make(map[string]string, len(c.Contacts.Groups))
	for _, g := range c.Contacts.Groups {
		if strings.TrimSpace(g) == "" {
			return fmt.Errorf("contacts.groups cannot contain blank names")
		}
		if strings.ContainsAny(g, "\r\n") {
			return fmt.Errorf("group %q cannot contain line breaks", g)
		}
		folded := strings.ToLower(strings.TrimSpace(g))
		if prev, dup := seen[folded]; dup {
			return fmt.Errorf("groups %q and %q collide (names are case-insensitive)", prev, g)
		}
		seen[folded] = g
	}

	if !task.SortKey(c.Tasks.DefaultSort).IsValid() {
		return fmt.Errorf("tasks.default_sort %q must be one of id, created, deadline", c.Tasks.DefaultSort)
	}

	if c.Contacts.File == "" || c.Tasks.File == "" || c.Ledger.AccountsFile == "" || c.Ledger.TransactionsFile == "" {
		return fmt.Errorf("store file paths cannot be empty")
	}

	files := map[string]string{
		c.ContactsFile():     "contacts.file",
		c.TasksFile():        "tasks.file",
		c.AccountsFile():     "ledger.accounts_file",
		c.TransactionsFile(): "ledger.transactions_file",
	}
	if len(files) != 4 {
		return fmt.Errorf("store files must resolve to four distinct paths")
	}

	return nil
}

// resolve anchors a store file under the data directory unless the
// configured path is absolute.
func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// ContactsFile returns the path to the contacts file.
func (c *Config) ContactsFile() string {
	return c.resolve(c.Contacts.File)
}

// TasksFile returns the path to the tasks file.
func (c *Config) TasksFile() string {
	return c.resolve(c.Tasks.File)
}

// AccountsFile returns the path to the ledger accounts file.
func (c *Config) AccountsFile() string {
	return c.resolve(c.Ledger.AccountsFile)
}

// TransactionsFile returns the path to the ledger transactions file.
func (c *Config) TransactionsFile() string {
	return c.resolve(c.Ledger.TransactionsFile)
}
