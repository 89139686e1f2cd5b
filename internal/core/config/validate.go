package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"
)

// ValidateDeep performs comprehensive validation of the configuration
// including file accessibility. The configPath argument specifies the
// config file location to validate (empty string skips that check).
// This calls Validate() first for basic structural validation, then
// adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.validateStoreFiles(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// validateStoreFiles checks that each configured store path is usable:
// the file itself must be a regular file when present, and its parent
// must be a directory when present.
func (c *Config) validateStoreFiles() error {
	files := map[string]string{
		"contacts.file":            c.ContactsFile(),
		"tasks.file":               c.TasksFile(),
		"ledger.accounts_file":     c.AccountsFile(),
		"ledger.transactions_file": c.TransactionsFile(),
	}

	var errs criterio.FieldErrorsBuilder
	for field, path := range files {
		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			// will be created on first save; the parent still has to be usable
			if err := isDirectoryOrNotExist(filepath.Dir(path)); err != nil {
				errs = errs.Append(field, fmt.Errorf("parent directory: %w", err))
			}
		case err != nil:
			errs = errs.Append(field, fmt.Errorf("cannot access: %w", err))
		case info.IsDir():
			errs = errs.Append(field, fmt.Errorf("%s is a directory, not a file", path))
		}
	}

	return errs.ToError()
}
