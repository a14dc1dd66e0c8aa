package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/term"
)

// SecretReader asks the user for a secret value
type SecretReader func(prompt string) (string, error)

// ReadSecretFromTerminal reads a secret from stdin with echo disabled. The
// prompt is written to stderr so stdout stays clean for the report.
func ReadSecretFromTerminal(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", goerr.New("no terminal available for interactive prompt", goerr.V("prompt", prompt))
	}

	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read secret", goerr.V("prompt", prompt))
	}

	return strings.TrimRight(string(secret), "\r\n"), nil
}
