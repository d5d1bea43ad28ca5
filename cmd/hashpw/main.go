// cmd/hashpw/main.go
//
// hashpw prints the bcrypt hash of a password. Use it to move directory
// rows off plaintext secrets before turning allow_plaintext_secrets off.
//
// On a terminal it prompts without echo. Otherwise it reads passwords from
// stdin, one per line, and prints one hash per line.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/dalemusser/stratahr/internal/app/system/authutil"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hashpw: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
		return printHash(string(pw))
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if pw := sc.Text(); pw != "" {
			if err := printHash(pw); err != nil {
				return err
			}
		}
	}
	return sc.Err()
}

func printHash(pw string) error {
	hash, err := authutil.HashPassword(pw)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
