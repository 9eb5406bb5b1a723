// Package store locates and loads the category table file.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/statement-budget/internal/categorytable"
	"fjacquet/statement-budget/internal/fileutils"
	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/models"
)

// DefaultCategoriesFile is looked up when no file is configured.
const DefaultCategoriesFile = "categories.yaml"

// AppConfigDir is the directory under ~/.config searched for data files.
const AppConfigDir = "statement-budget"

// CategoryLoader provides category table entries.
type CategoryLoader interface {
	LoadCategories() ([]models.CategoryConfig, error)
}

// CategoryStore manages loading and saving of the category table file.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store for categoriesFile. An empty name means
// DefaultCategoriesFile, with the built-in table used when it is not found.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &CategoryStore{CategoriesFile: categoriesFile, logger: logger}
}

// FindConfigFile looks for a file in the current directory, ./config,
// ./database and ~/.config/statement-budget, in that order.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", AppConfigDir, filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadCategories reads the category table entries. When no file was
// configured and DefaultCategoriesFile is not found, the built-in table is
// returned. A configured file that cannot be found is an error.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.CategoriesFile
	explicit := filename != ""
	if !explicit {
		filename = DefaultCategoriesFile
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			s.logger.Debug("No categories file found, using built-in table",
				logging.F("file", filename))
			return categorytable.Default().Configs(), nil
		}
		return nil, fmt.Errorf("error resolving categories file %s: %w", filename, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	entries, err := categorytable.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.logger.Debug("Loaded categories",
		logging.F("file", path),
		logging.F(logging.FieldCount, len(entries)))
	return entries, nil
}

// SaveCategories writes entries in the canonical mapping form to path.
func (s *CategoryStore) SaveCategories(path string, entries []models.CategoryConfig) error {
	data, err := categorytable.Marshal(entries)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, data); err != nil {
		return fmt.Errorf("error saving categories: %w", err)
	}
	s.logger.Info("Categories saved",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(entries)))
	return nil
}

// LoadTable loads entries from loader and builds the category table.
func LoadTable(loader CategoryLoader) (*categorytable.Table, error) {
	entries, err := loader.LoadCategories()
	if err != nil {
		return nil, err
	}
	table, err := categorytable.New(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid category table: %w", err)
	}
	return table, nil
}
