package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct{ code int }

func (e *codedError) Error() string { return "coded" }

func TestAsType(t *testing.T) {
	wrapped := Wrap(&codedError{code: 409}, "outer")

	got, ok := AsType[*codedError](wrapped)
	require.True(t, ok)
	assert.Equal(t, 409, got.code)

	_, ok = AsType[*fs.PathError](wrapped)
	assert.False(t, ok)
}

func TestWrapKeepsCause(t *testing.T) {
	base := New("base")
	err := Wrapf(Wrap(base, "middle"), "outer %d", 1)

	assert.True(t, Is(err, base))
	assert.Equal(t, base, Cause(err))
	assert.Equal(t, "outer 1: middle: base", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, WithStack(nil))
}

func TestErrorf(t *testing.T) {
	err := Errorf("unknown provider %q", "kafka")

	assert.EqualError(t, err, `unknown provider "kafka"`)
}
