package chat

import (
	"errors"
	"io"

	"github.com/peterh/liner"
)

// ErrAborted is returned by a LineReader when the user presses Ctrl-C at
// the prompt.
var ErrAborted = errors.New("prompt aborted")

// LineReader reads user input one line at a time. Prompt returns io.EOF at
// end of input and ErrAborted on Ctrl-C.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// TerminalReader is a LineReader with line editing and an in-memory input
// history (arrow keys recall earlier lines). Nothing is written to disk.
type TerminalReader struct {
	state *liner.State
}

// NewTerminalReader puts the terminal into line-editing mode. Close must be
// called to restore it.
func NewTerminalReader() *TerminalReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &TerminalReader{state: state}
}

// Prompt reads one line.
func (r *TerminalReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ErrAborted
	case errors.Is(err, io.EOF):
		return "", io.EOF
	}
	return line, err
}

// AppendHistory adds line to the recall history.
func (r *TerminalReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

// Close restores the terminal.
func (r *TerminalReader) Close() error {
	return r.state.Close()
}
