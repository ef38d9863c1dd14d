package impl

import (
	"io"
	"log/slog"
	"testing"

	domainerrors "gatekeeper/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// requireAppError asserts that err carries the expected domain error and returns it.
func requireAppError(t *testing.T, err error, expected *domainerrors.BaseError) domainerrors.AppError {
	t.Helper()

	require.Error(t, err)
	assert.True(t, errors.Is(err, expected), "expected %s, got %v", expected.ErrorCode(), err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))

	return appErr
}
