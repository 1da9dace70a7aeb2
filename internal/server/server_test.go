package server

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseAfterFailedStart(t *testing.T) {
	tests := []struct {
		name     string
		closeErr error
		wantLog  bool
	}{
		{name: "close error is logged", closeErr: errors.New("pool already closed"), wantLog: true},
		{name: "clean close stays quiet", closeErr: nil, wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			closed := false
			closeAfterFailedStart(&logger, "database", closerFunc(func() error {
				closed = true
				return tt.closeErr
			}))

			assert.True(t, closed)
			if !tt.wantLog {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), `"resource":"database"`)
			assert.Contains(t, buf.String(), "pool already closed")
		})
	}
}
