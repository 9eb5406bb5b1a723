// Package container provides dependency injection for the statement-budget
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/statement-budget/internal/batch"
	"fjacquet/statement-budget/internal/categorizer"
	"fjacquet/statement-budget/internal/categorytable"
	"fjacquet/statement-budget/internal/config"
	"fjacquet/statement-budget/internal/extractor"
	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/report"
	"fjacquet/statement-budget/internal/statement"
	"fjacquet/statement-budget/internal/store"
	"fjacquet/statement-budget/internal/textextract"
)

// Container holds all application dependencies. It is immutable after
// creation; dependencies are reached through getters.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	table       *categorytable.Table
	text        textextract.Extractor
	extractor   *extractor.Extractor
	categorizer *categorizer.Categorizer
	processor   *statement.Processor
	generator   *report.Generator
	runner      *batch.Runner
	formats     []report.Format
}

// NewContainer creates and wires all application dependencies, logging
// through logrus as configured.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with a caller-supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)
	table, err := store.LoadTable(categoryStore)
	if err != nil {
		return nil, fmt.Errorf("error loading categories: %w", err)
	}

	formats, err := report.ParseFormats(cfg.Report.Formats)
	if err != nil {
		return nil, err
	}

	text := textextract.NewDispatcher(logger)
	ex := extractor.New(extractor.Options{
		StartMarker: cfg.Statement.StartMarker,
		EndMarkers:  cfg.Statement.EndMarkers,
		MaskMarker:  cfg.Statement.MaskMarker,
	}, logger.WithField(logging.FieldComponent, "extractor"))
	cat := categorizer.New(table, logger.WithField(logging.FieldComponent, "categorizer"))
	processor := statement.NewProcessor(text, ex, cat, logger).WithDelimiter(cfg.DelimiterRune())
	generator := report.NewGenerator(logger.WithField(logging.FieldComponent, "report"), cfg.DelimiterRune())
	runner := batch.NewRunner(processor, generator, logger.WithField(logging.FieldComponent, "batch"))

	logger.Debug("Container initialized",
		logging.F("categories", table.Len()),
		logging.F("formats", formats))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		table:       table,
		text:        text,
		extractor:   ex,
		categorizer: cat,
		processor:   processor,
		generator:   generator,
		runner:      runner,
		formats:     formats,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the category store.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetTable returns the loaded category table.
func (c *Container) GetTable() *categorytable.Table {
	return c.table
}

// GetTextExtractor returns the document-to-lines extractor.
func (c *Container) GetTextExtractor() textextract.Extractor {
	return c.text
}

// GetExtractor returns the statement line scanner.
func (c *Container) GetExtractor() *extractor.Extractor {
	return c.extractor
}

// GetCategorizer returns the categorizer.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetProcessor returns the statement processor.
func (c *Container) GetProcessor() *statement.Processor {
	return c.processor
}

// GetGenerator returns the report generator.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// GetBatchRunner returns the batch runner.
func (c *Container) GetBatchRunner() *batch.Runner {
	return c.runner
}

// GetFormats returns the configured report formats.
func (c *Container) GetFormats() []report.Format {
	return append([]report.Format(nil), c.formats...)
}
