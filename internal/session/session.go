// Package session holds the single "current dataset and selected customer"
// pair of an operator session.
//
// Uploads are last-write-wins: starting an upload cancels the one in flight,
// and a parse that finishes after a newer upload started is discarded.
// Readers always see a complete snapshot, never a dataset paired with the
// previous dataset's selection.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"fjacquet/shipsort/internal/customer"
	"fjacquet/shipsort/internal/ingest"
	"fjacquet/shipsort/internal/invoice"
	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/models"
	"fjacquet/shipsort/internal/parsererror"
)

var (
	// ErrUnauthorized is returned when the upload gate is closed.
	ErrUnauthorized = errors.New("upload not authorized")
	// ErrNoDataset is returned by queries made before a successful upload.
	ErrNoDataset = errors.New("no dataset loaded")
	// ErrUnknownCustomer is returned when selecting a label that is not in
	// the current index.
	ErrUnknownCustomer = errors.New("customer not in current dataset")
	// ErrNoSelection is returned by Invoice when no customer is selected.
	ErrNoSelection = errors.New("no customer selected")
	// ErrSuperseded is returned by an upload that finished after a newer
	// upload started. Its result was discarded.
	ErrSuperseded = errors.New("upload superseded by a newer upload")
)

// Ingester is the part of the ingest service a session uses.
type Ingester interface {
	Ingest(ctx context.Context, name string, r io.Reader) (*ingest.Result, error)
}

// Authorizer is the upload gate.
type Authorizer interface {
	Authorized() bool
}

// StaticAuthorizer is an Authorizer with a fixed answer.
type StaticAuthorizer bool

// Authorized implements Authorizer.
func (a StaticAuthorizer) Authorized() bool { return bool(a) }

// State is an immutable snapshot of the session.
type State struct {
	Result     *ingest.Result
	Query      string
	Selection  string
	Generation uint64
}

// Loaded reports whether a dataset is present.
func (s *State) Loaded() bool {
	return s != nil && s.Result != nil
}

// Session is safe for concurrent use.
type Session struct {
	ingester Ingester
	auth     Authorizer
	logger   logging.Logger

	mu         sync.Mutex
	state      *State
	generation uint64
	cancel     context.CancelFunc
}

// New creates an empty session. A nil auth allows every upload.
func New(ingester Ingester, auth Authorizer, logger logging.Logger) *Session {
	if auth == nil {
		auth = StaticAuthorizer(true)
	}
	return &Session{
		ingester: ingester,
		auth:     auth,
		logger:   logging.OrDefault(logger),
		state:    &State{},
	}
}

// Snapshot returns the current state. The returned value must not be
// modified.
func (s *Session) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Upload ingests r and, if no newer upload started meanwhile, replaces the
// dataset, index, query and selection in one step. A failed upload that is
// still the latest clears the session: the previous dataset is not kept.
func (s *Session) Upload(ctx context.Context, name string, r io.Reader) (*ingest.Result, error) {
	if !s.auth.Authorized() {
		s.logger.Warn("Upload refused", logging.F(logging.FieldFile, name))
		return nil, ErrUnauthorized
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	s.cancel = cancel
	s.mu.Unlock()

	log := s.logger.WithFields(logging.F(logging.FieldFile, name), logging.F(logging.FieldGeneration, gen))
	log.Debug("Upload started")

	res, err := s.ingester.Ingest(ctx, name, r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		log.Info("Discarding superseded upload")
		return nil, ErrSuperseded
	}
	s.cancel = nil

	if err != nil {
		s.state = &State{Generation: gen}
		log.WithError(err).Warn("Upload failed, session cleared",
			logging.F(logging.FieldErrorKind, parsererror.Kind(err)))
		return nil, err
	}

	s.state = &State{Result: res, Generation: gen}
	log.Info("Dataset replaced",
		logging.F(logging.FieldDatasetID, res.Dataset.ID),
		logging.F(logging.FieldRecords, res.Dataset.Len()))
	return res, nil
}

// Labels returns all customer labels of the current dataset.
func (s *Session) Labels() ([]string, error) {
	st := s.Snapshot()
	if !st.Loaded() {
		return nil, ErrNoDataset
	}
	if err := st.Result.Index.Err(); err != nil {
		return nil, err
	}
	return st.Result.Index.Labels(), nil
}

// Search records query and returns the matching labels.
func (s *Session) Search(query string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	if !st.Loaded() {
		return nil, ErrNoDataset
	}
	if err := st.Result.Index.Err(); err != nil {
		return nil, err
	}

	next := *st
	next.Query = query
	s.state = &next

	return customer.Search(st.Result.Index.Labels(), query), nil
}

// Select makes label the current customer and returns its transactions.
// The label must be one of the index labels.
func (s *Session) Select(label string) ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	if !st.Loaded() {
		return nil, ErrNoDataset
	}
	res := st.Result
	if !res.CustomersEnabled() {
		return nil, parsererror.ErrUnresolvedColumnRole
	}
	label = strings.TrimSpace(label)
	if !res.Index.Contains(label) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCustomer, label)
	}

	next := *st
	next.Selection = label
	s.state = &next

	records := customer.Select(res.Dataset, res.Role, next.Selection)
	s.logger.Debug("Customer selected",
		logging.F(logging.FieldCustomer, next.Selection),
		logging.F(logging.FieldCount, len(records)))
	return records, nil
}

// Selected returns the current selection and its transactions.
func (s *Session) Selected() (string, []models.Record, error) {
	st := s.Snapshot()
	if !st.Loaded() {
		return "", nil, ErrNoDataset
	}
	if st.Selection == "" {
		return "", nil, ErrNoSelection
	}
	return st.Selection, customer.Select(st.Result.Dataset, st.Result.Role, st.Selection), nil
}

// Invoice hands the selected customer and its transactions to gen.
func (s *Session) Invoice(gen invoice.Generator) (*invoice.Document, error) {
	label, records, err := s.Selected()
	if err != nil {
		return nil, err
	}
	doc, err := gen.Generate(label, records)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice for %q: %w", label, err)
	}
	return doc, nil
}

// Clear drops the dataset and cancels any upload in flight.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.state = &State{Generation: s.generation}
}
