// Package container provides dependency injection for shipsort.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/shipsort/internal/config"
	"fjacquet/shipsort/internal/ingest"
	"fjacquet/shipsort/internal/invoice"
	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/parser"
	"fjacquet/shipsort/internal/report"
	"fjacquet/shipsort/internal/resolver"
	"fjacquet/shipsort/internal/session"
	"fjacquet/shipsort/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	store    *store.RuleStore
	resolver *resolver.Resolver
	ingest   *ingest.Service
	session  *session.Session
	invoice  *invoice.CSVExporter
	reports  *report.Generator
}

// NewContainer creates and wires all application dependencies.
//
// Parameters:
//   - cfg: Application configuration
//
// Returns:
//   - *Container: Fully wired container with all dependencies
//   - error: Any error encountered during dependency creation
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.NewLogger(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDefault(logger)

	ruleStore := store.NewRuleStore(cfg.Resolver.RulesFile, logger)
	res, err := NewResolver(ruleStore, logger)
	if err != nil {
		return nil, err
	}

	svc := ingest.NewService(parser.Options{
		Delimiter:  cfg.Delimiter(),
		MaxRows:    cfg.Ingest.MaxRows,
		XLSCharset: cfg.Ingest.XLSCharset,
	}, res, logger)

	sess := session.New(svc, session.StaticAuthorizer(cfg.UploadsAuthorized()), logger)
	exporter := invoice.NewCSVExporter(cfg.Invoice.OutputDir, cfg.Invoice.AmountColumn, cfg.Delimiter(), logger)

	logger.Debug("Container initialized successfully",
		logging.F("rules", len(res.Rules())),
		logging.F("auth_enabled", cfg.Auth.Enabled))

	return &Container{
		logger:   logger,
		config:   cfg,
		store:    ruleStore,
		resolver: res,
		ingest:   svc,
		session:  sess,
		invoice:  exporter,
		reports:  report.NewGenerator(logger),
	}, nil
}

// NewResolver builds a resolver from the rules a loader provides.
func NewResolver(loader store.RuleLoader, logger logging.Logger) (*resolver.Resolver, error) {
	rules, err := loader.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load resolver rules: %w", err)
	}
	return resolver.New(logger, rules...), nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the resolver rule store.
func (c *Container) GetStore() *store.RuleStore {
	return c.store
}

// GetResolver returns the customer column resolver.
func (c *Container) GetResolver() *resolver.Resolver {
	return c.resolver
}

// GetIngestService returns the ingest pipeline.
func (c *Container) GetIngestService() *ingest.Service {
	return c.ingest
}

// GetSession returns the operator session.
func (c *Container) GetSession() *session.Session {
	return c.session
}

// GetInvoiceGenerator returns the CSV invoice exporter.
func (c *Container) GetInvoiceGenerator() *invoice.CSVExporter {
	return c.invoice
}

// GetReportGenerator returns the customer summary report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reports
}

// Close clears the session and releases resources.
func (c *Container) Close() error {
	c.session.Clear()
	c.logger.Debug("Container closed")
	return nil
}
