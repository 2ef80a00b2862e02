package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// PasswordReader prompts for a secret.
type PasswordReader func(prompt string) (string, error)

// TerminalPassword reads without echo when fd is a terminal and falls back
// to a plain line from in otherwise.
func TerminalPassword(fd int, in *bufio.Reader, out io.Writer) PasswordReader {
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		if term.IsTerminal(fd) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}
