package linkcheck_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/linkcheck"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := linkcheck.Errorf(linkcheck.ETIMEOUT, "fetch of %q timed out", "http://example.com")

	assert.Equal(t, linkcheck.ETIMEOUT, linkcheck.ErrorCode(err))
	assert.Equal(t, "fetch of \"http://example.com\" timed out", linkcheck.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, linkcheck.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, linkcheck.EINTERNAL, linkcheck.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, linkcheck.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", linkcheck.ErrorMessage(errors.New("boom")))
}
