package errors

import (
	"fmt"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
)

func TestClass(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain sentinel", ErrChannelExists, ClassConflict},
		{"fmt wrapped", fmt.Errorf("register: %w", ErrChannelNotFound), ClassNotFound},
		{"oops wrapped", oops.With("channel_id", int64(-100)).Wrap(ErrTransport), ClassTransport},
		{"session", oops.Wrapf(ErrSessionCorrupted, "save filter"), ClassIntegrity},
		{"joined", oops.With("to", 1).Wrap(Join(ErrTransport, fmt.Errorf("forbidden"))), ClassTransport},
		{"unknown", fmt.Errorf("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Class(tt.err))
		})
	}
}

func TestIsAndAs(t *testing.T) {
	err := oops.With("subscriber_id", int64(7)).Wrap(ErrFilterNotFound)
	assert.True(t, Is(err, ErrFilterNotFound))
	assert.False(t, Is(err, ErrChannelNotFound))

	var oopsErr oops.OopsError
	assert.True(t, As(err, &oopsErr))
}
