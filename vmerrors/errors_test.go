package vmerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorParts(t *testing.T) {
	assert.Equal(t, "InvalidAddress", GetErrorName(ErrInvalidAddress))
	assert.Equal(t, "M1", GetErrorCode(ErrInvalidAddress))
	assert.Equal(t, "M1_InvalidAddress", GetErrorCodeWithName(ErrInvalidAddress))
	assert.Equal(t, "No Error", GetErrorName(nil))
	assert.Equal(t, "", GetErrorCode(errors.New("plain")))
	assert.Equal(t, "DESC NOT SET", GetErrorDesc(errors.New("plain")))
}

func TestWrappedErrors(t *testing.T) {
	f := &Fault{IP: 4, Word: 42, Value: 42, Err: ErrUnknownOpcode}
	wrapped := fmt.Errorf("amp 3: %w", f)

	assert.ErrorIs(t, wrapped, ErrUnknownOpcode)
	assert.True(t, IsFatal(wrapped))
	assert.Equal(t, "M2", GetErrorCode(wrapped))
	assert.Equal(t, "UnknownOpcode (ip=4 word=42 value=42)", f.Error())

	assert.False(t, IsFatal(ErrStepLimit))
	assert.False(t, IsFatal(fmt.Errorf("x: %w", ErrDeadlock)))
}

func TestFromCode(t *testing.T) {
	for _, s := range catalog {
		assert.Equal(t, s, FromCode(GetErrorCode(s)))
	}
	assert.Nil(t, FromCode("Z9"))
}
