package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

// ErrInterrupted is returned when the user presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("cancelled")

// KeyReader reads one key press at a time. On a terminal it switches to raw
// mode for each read; otherwise it reads whole lines and uses the first
// non-blank character, which keeps piped input and tests simple.
type KeyReader struct {
	fd  int
	tty bool
	br  *bufio.Reader
}

// NewKeyReader wraps r. Raw mode is used only when r is a terminal.
func NewKeyReader(r io.Reader) *KeyReader {
	k := &KeyReader{br: bufio.NewReader(r)}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		k.fd = int(f.Fd())
		k.tty = true
	}
	return k
}

// ReadKey returns the next key, lower-cased. Enter on an empty line yields '\n'.
func (k *KeyReader) ReadKey() (rune, error) {
	if k.tty {
		return k.readRaw()
	}

	line, err := k.br.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return '\n', nil
	}
	r := []rune(line)[0]
	if r == 3 {
		return 0, ErrInterrupted
	}
	return unicode.ToLower(r), nil
}

func (k *KeyReader) readRaw() (rune, error) {
	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		return 0, err
	}
	defer term.Restore(k.fd, oldState)

	for {
		r, _, err := k.br.ReadRune()
		if err != nil {
			return 0, err
		}
		switch r {
		case 3: // Ctrl+C
			return 0, ErrInterrupted
		case '\r', '\n':
			return '\n', nil
		case 27: // escape sequences (arrow keys) are ignored
			for k.br.Buffered() > 0 {
				_, _, _ = k.br.ReadRune()
			}
			continue
		}
		return unicode.ToLower(r), nil
	}
}

// Confirm prompts the user for a yes/no answer.
func Confirm(k *KeyReader, w io.Writer, prompt string) (bool, error) {
	fmt.Fprint(w, prompt+" (y/n): ")
	for {
		r, err := k.ReadKey()
		if err != nil {
			if errors.Is(err, ErrInterrupted) {
				fmt.Fprint(w, "^C\r\n")
			}
			return false, err
		}
		switch r {
		case 'y':
			fmt.Fprint(w, "y\r\n")
			return true, nil
		case 'n':
			fmt.Fprint(w, "n\r\n")
			return false, nil
		}
	}
}
