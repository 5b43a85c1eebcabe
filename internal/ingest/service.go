// Package ingest runs an uploaded file through the whole pipeline: format
// check, parse, normalize, customer column resolution and indexing.
package ingest

import (
	"bytes"
	"context"
	"io"
	"time"

	"fjacquet/shipsort/internal/customer"
	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/models"
	"fjacquet/shipsort/internal/parser"
	"fjacquet/shipsort/internal/parsererror"
	"fjacquet/shipsort/internal/resolver"
	"fjacquet/shipsort/internal/schema"

	"github.com/google/uuid"
)

// RoleResolver picks the customer column of a header row.
type RoleResolver interface {
	Resolve(fields []string) models.ColumnRole
}

// Result is everything derived from one successful upload. The role is
// resolved once here and shared by the index and later selections.
type Result struct {
	Dataset *models.Dataset
	Role    models.ColumnRole
	Index   *customer.Index
}

// CustomersEnabled reports whether customer search and selection are
// available for this dataset.
func (r *Result) CustomersEnabled() bool {
	return r != nil && r.Role.Resolved()
}

// Service ingests files. It holds no per-upload state and is safe for
// concurrent use.
type Service struct {
	opts       parser.Options
	resolver   RoleResolver
	normalizer *schema.Normalizer
	logger     logging.Logger
	now        func() time.Time
}

// NewService creates a Service. opts.Source is ignored; each upload sets
// its own. A nil roles uses the built-in resolver rules.
func NewService(opts parser.Options, roles RoleResolver, logger logging.Logger) *Service {
	logger = logging.OrDefault(logger)
	if roles == nil {
		roles = resolver.New(logger)
	}
	return &Service{
		opts:       opts,
		resolver:   roles,
		normalizer: schema.NewNormalizer(logger),
		logger:     logger,
		now:        time.Now,
	}
}

// Ingest reads r as the file called name. Errors are parsererror types, or
// ctx.Err() when the upload was cancelled. A dataset without a customer
// column is not an error: the Result reports CustomersEnabled() == false.
func (s *Service) Ingest(ctx context.Context, name string, r io.Reader) (*Result, error) {
	start := s.now()
	log := s.logger.WithFields(logging.F(logging.FieldFile, name))

	format, err := parser.FormatFromName(name)
	if err != nil {
		log.Warn("Rejected upload", logging.F(logging.FieldErrorKind, parsererror.Kind(err)))
		return nil, err
	}

	data, err := readAll(ctx, r)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &parsererror.MalformedInputError{FilePath: name, Format: string(format), Err: err}
	}

	p, err := parser.ForFile(name, s.opts, log)
	if err != nil {
		return nil, err
	}

	rows, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		log.WithError(err).Warn("Failed to parse upload",
			logging.F(logging.FieldErrorKind, parsererror.Kind(err)))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds, err := s.normalizer.Normalize(name, rows)
	if err != nil {
		log.WithError(err).Warn("Failed to normalize upload",
			logging.F(logging.FieldErrorKind, parsererror.Kind(err)))
		return nil, err
	}
	ds.ID = uuid.NewString()
	ds.Source = name
	ds.Format = format
	ds.CreatedAt = s.now()

	role := s.resolver.Resolve(ds.Fields)
	index := customer.BuildIndex(ds, role)

	log.Info("Ingested file",
		logging.F(logging.FieldDatasetID, ds.ID),
		logging.F(logging.FieldFormat, string(format)),
		logging.F(logging.FieldRecords, ds.Len()),
		logging.F(logging.FieldColumn, role.String()),
		logging.F(logging.FieldCount, index.Len()),
		logging.F(logging.FieldDuration, s.now().Sub(start).Milliseconds()))

	return &Result{Dataset: ds, Role: role, Index: index}, nil
}

// readAll reads r to the end, giving up as soon as ctx is done.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.ReadAll(&ctxReader{ctx: ctx, r: r})
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
