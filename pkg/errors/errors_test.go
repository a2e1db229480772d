// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and fatal classification

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "directory not in tree",
			wantStr: "[NOT_FOUND] directory not in tree",
		},
		{
			name:    "invalid_slot_error",
			code:    errors.ErrInvalidSlot,
			message: "bad slot",
			wantStr: "[INVALID_SLOT] bad slot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details, "details should be initialized")
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrInvalidSlot, "slot %q out of range %d", "c999", 3)
	assert.Equal(t, `slot "c999" out of range 3`, err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrDirInfoLoad, "cannot read dir info")

		assert.Equal(t, errors.ErrDirInfoLoad, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[DIRINFO_LOAD] cannot read dir info: base error", err.Error())
		assert.True(t, stderrors.Is(err, baseErr))
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrFileCopy, "copy failed").
		WithDetail("source", "fighter/mario/model/body/c00/model.numdlb").
		WithDetail("attempt", 1)

	assert.Equal(t, "fighter/mario/model/body/c00/model.numdlb", err.Details["source"])
	assert.Equal(t, 1, err.Details["attempt"])
	assert.Equal(t, err.Details, errors.GetErrorDetails(err))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2), "same code should match")
	assert.False(t, err1.Is(err3), "different codes should not match")
	assert.True(t, stderrors.Is(fmt.Errorf("outer: %w", err1), err2))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrKnownFilesLoad, errors.GetErrorCode(errors.New(errors.ErrKnownFilesLoad, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		code  errors.ErrorCode
		fatal bool
	}{
		{errors.ErrDirInfoLoad, true},
		{errors.ErrDirInfoParse, true},
		{errors.ErrKnownFilesLoad, true},
		{errors.ErrInvalidModDir, true},
		{errors.ErrNotFound, false},
		{errors.ErrFileCopy, false},
		{errors.ErrConfigParse, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.fatal, errors.IsFatal(errors.New(tt.code, "x")))
		})
	}

	assert.False(t, errors.IsFatal(stderrors.New("plain")))
}
