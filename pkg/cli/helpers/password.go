package helpers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptyPassword is returned when the operator enters no password.
var ErrEmptyPassword = errors.New("password must not be empty")

// ReadPassword writes prompt to out and reads one password from in.
// Terminal input is read without echo; anything else is read up to the first newline.
func ReadPassword(in io.Reader, out io.Writer, prompt string) (string, error) {
	_, _ = fmt.Fprint(out, prompt)

	var (
		password string
		err      error
	)

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		var raw []byte

		raw, err = term.ReadPassword(int(file.Fd()))
		password = string(raw)

		_, _ = fmt.Fprintln(out)
	} else {
		password, err = bufio.NewReader(in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}

	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return "", ErrEmptyPassword
	}

	return password, nil
}
