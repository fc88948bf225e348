package cli

import (
	"errors"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedReader struct {
	lines  []string
	err    error
	prompt string
	closed bool
}

func (s *scriptedReader) Readline() (string, error) {
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedReader) Close() error {
	s.closed = true
	return nil
}

func withScript(t *testing.T, r *scriptedReader) {
	t.Helper()
	old := newLineReader
	newLineReader = func(prompt string) (LineReader, error) {
		r.prompt = prompt
		return r, nil
	}
	t.Cleanup(func() { newLineReader = old })
}

func TestConfirmByName(t *testing.T) {
	tests := []struct {
		name   string
		reader *scriptedReader
		want   bool
	}{
		{"exact name", &scriptedReader{lines: []string{"alpha"}}, true},
		{"surrounding space", &scriptedReader{lines: []string{"  alpha "}}, true},
		{"empty cancels", &scriptedReader{lines: []string{""}}, false},
		{"mismatch asks again", &scriptedReader{lines: []string{"alpah", "alpha"}}, true},
		{"mismatch then cancel", &scriptedReader{lines: []string{"beta", ""}}, false},
		{"eof cancels", &scriptedReader{}, false},
		{"interrupt cancels", &scriptedReader{err: readline.ErrInterrupt}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withScript(t, tt.reader)

			got, err := ConfirmByName("delete the server", "alpha")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, tt.reader.closed)
			assert.Equal(t, "Enter alpha to delete the server or nothing to cancel: ", tt.reader.prompt)
		})
	}
}

func TestConfirmByName_ReadError(t *testing.T) {
	boom := errors.New("tty gone")
	withScript(t, &scriptedReader{err: boom})

	_, err := ConfirmByName("delete the server", "alpha")
	assert.ErrorIs(t, err, boom)
}
