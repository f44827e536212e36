package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "ctx"))
		assert.NoError(t, Wrapf(nil, "ctx %d", 1))
		assert.NoError(t, Persistence(nil, "ctx"))
	})

	t.Run("keeps sentinel reachable", func(t *testing.T) {
		err := Wrapf(ErrNotFound, "activity %d", 42)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "activity 42: not found", err.Error())
	})
}

func TestPersistence(t *testing.T) {
	driverErr := errors.New("disk I/O error")
	err := Persistence(driverErr, "failed to insert activity")

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, driverErr)
	assert.Equal(t, "persistence error: failed to insert activity: disk I/O error", err.Error())
}
