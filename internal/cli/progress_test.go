package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSpinner_Quiet(t *testing.T) {
	var buf bytes.Buffer
	ran := false

	err := WithSpinner(&buf, true, "Copying", func() error {
		ran = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, ran)
	assert.Empty(t, buf.String())
}

func TestWithSpinner_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")

	err := WithSpinner(&buf, false, "Copying", func() error { return boom })
	assert.ErrorIs(t, err, boom)
}
