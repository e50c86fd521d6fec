package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCmd(t *testing.T) {
	t.Run("parses options into the struct", func(t *testing.T) {
		var got string

		c := New("test", "a test command", func(ctx context.Context, opts struct {
			Platform string `short:"p" long:"platform"`
		}) error {
			got = opts.Platform
			return nil
		})

		var buf bytes.Buffer
		c.Stderr = &buf

		assert.Equal(t, 0, c.Run([]string{"-p", "Linux"}))
		assert.Equal(t, "Linux", got)
		assert.Equal(t, "a test command", c.Synopsis())
	})

	t.Run("reports errors returned by the function", func(t *testing.T) {
		c := New("test", "fails", func(ctx context.Context, opts struct{}) error {
			return errors.New("boom")
		})

		var buf bytes.Buffer
		c.Stderr = &buf

		assert.Equal(t, 1, c.Run(nil))
		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("rejects unknown options", func(t *testing.T) {
		c := New("test", "strict", func(ctx context.Context, opts struct{}) error {
			return nil
		})

		var buf bytes.Buffer
		c.Stderr = &buf

		assert.Equal(t, 1, c.Run([]string{"--nope"}))
	})

	t.Run("panics on a bad signature", func(t *testing.T) {
		assert.Panics(t, func() {
			New("test", "bad", func(opts struct{}) error { return nil })
		})
	})
}

func TestStopSignals(t *testing.T) {
	assert.Contains(t, stopSignals, os.Interrupt)
}
