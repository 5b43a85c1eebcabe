// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"fjacquet/shipsort/internal/fileutils"
	"fjacquet/shipsort/internal/ingest"
	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/parser"
	"fjacquet/shipsort/internal/parsererror"
	"fjacquet/shipsort/internal/session"
)

// InputFiles expands path into the files to ingest: a directory yields its
// supported files in name order, anything else is returned as is.
func InputFiles(path string) ([]string, error) {
	if path == "" {
		return nil, errors.New("an input file is required (-i)")
	}
	if !fileutils.DirectoryExists(path) {
		return []string{path}, nil
	}
	files, err := fileutils.ListFilesWithExtensions(path, parser.SupportedExtensions()...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV, XLS or XLSX files in %s", path)
	}
	return files, nil
}

// Upload opens path and loads it into sess under its base name. The
// extension is checked before the file is opened.
func Upload(ctx context.Context, sess *session.Session, path string, logger logging.Logger) (*ingest.Result, error) {
	if _, err := parser.FormatFromName(path); err != nil {
		return nil, err
	}
	file, err := fileutils.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close input file", logging.F(logging.FieldFile, path))
		}
	}()
	return sess.Upload(ctx, filepath.Base(path), file)
}

// UserError logs err in full and returns the short message shown to the
// operator.
func UserError(logger logging.Logger, err error) error {
	logger.WithError(err).Debug("Command failed",
		logging.F(logging.FieldErrorKind, parsererror.Kind(err)))
	return errors.New(Message(err))
}

// Message returns the operator-facing text for err.
func Message(err error) string {
	switch {
	case errors.Is(err, session.ErrUnauthorized):
		return "Uploads are disabled: set auth.token or SHIPSORT_AUTH_TOKEN."
	case errors.Is(err, session.ErrNoDataset):
		return "No file loaded."
	case errors.Is(err, session.ErrUnknownCustomer), errors.Is(err, session.ErrNoSelection):
		return err.Error()
	default:
		return parsererror.UserMessage(err)
	}
}
