package common_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/shipsort/cmd/common"
	"fjacquet/shipsort/internal/ingest"
	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/models"
	"fjacquet/shipsort/internal/parsererror"
	"fjacquet/shipsort/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockIngester implements session.Ingester for testing
type MockIngester struct {
	mock.Mock
}

func (m *MockIngester) Ingest(ctx context.Context, name string, r io.Reader) (*ingest.Result, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(name, string(data))
	res, _ := args.Get(0).(*ingest.Result)
	return res, args.Error(1)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInputFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.CSV", "x")
	writeFile(t, dir, "a.xlsx", "x")
	writeFile(t, dir, "notes.txt", "x")
	empty := t.TempDir()

	files, err := common.InputFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.CSV")}, files)

	files, err = common.InputFiles("single.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"single.csv"}, files)

	_, err = common.InputFiles(empty)
	assert.ErrorContains(t, err, "no CSV, XLS or XLSX files")

	_, err = common.InputFiles("")
	assert.ErrorContains(t, err, "input file is required")
}

func TestUpload(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ship.csv", "Customer\nAcme\n")
	want := &ingest.Result{Dataset: &models.Dataset{ID: "ds-1"}}

	ingester := &MockIngester{}
	ingester.On("Ingest", "ship.csv", "Customer\nAcme\n").Return(want, nil)
	sess := session.New(ingester, nil, logging.NewMockLogger())

	got, err := common.Upload(context.Background(), sess, path, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Same(t, want, got)
	ingester.AssertExpectations(t)
}

func TestUpload_RejectsExtensionBeforeOpening(t *testing.T) {
	ingester := &MockIngester{}
	sess := session.New(ingester, nil, logging.NewMockLogger())

	_, err := common.Upload(context.Background(), sess, "/does/not/exist.pdf", logging.NewMockLogger())
	assert.Equal(t, parsererror.KindUnsupportedFormat, parsererror.Kind(err))
	ingester.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
}

func TestUpload_MissingFile(t *testing.T) {
	ingester := &MockIngester{}
	sess := session.New(ingester, nil, logging.NewMockLogger())

	_, err := common.Upload(context.Background(), sess, filepath.Join(t.TempDir(), "absent.csv"), logging.NewMockLogger())
	require.Error(t, err)
	ingester.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", session.ErrUnauthorized, "Uploads are disabled: set auth.token or SHIPSORT_AUTH_TOKEN."},
		{"no dataset", session.ErrNoDataset, "No file loaded."},
		{"unknown customer", fmt.Errorf("%w: %q", session.ErrUnknownCustomer, "Zed"), `customer not in current dataset: "Zed"`},
		{"no selection", session.ErrNoSelection, "no customer selected"},
		{"malformed", &parsererror.MalformedInputError{FilePath: "a.csv", Err: errors.New("bad")}, "Error processing file. Please upload it again."},
		{"unresolved", parsererror.ErrUnresolvedColumnRole, parsererror.UserMessage(parsererror.ErrUnresolvedColumnRole)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, common.Message(tt.err))
		})
	}
}

func TestUserError(t *testing.T) {
	logger := logging.NewMockLogger()
	err := common.UserError(logger, &parsererror.EmptyDatasetError{FilePath: "a.csv", Reason: "header row only"})
	assert.EqualError(t, err, "Error processing file. Please upload it again.")
	assert.True(t, logger.HasEntry("DEBUG", "Command failed"))
}
