// Package cli is a minimal stdin-driven operator menu, kept as an
// out-of-band convenience alongside the session protocol rather than
// part of it.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Run drives the menu loop until the operator enters "99" or in is
// exhausted.
func Run(in io.Reader, out io.Writer, log zerolog.Logger) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "99: Exit\n")

		if !scanner.Scan() {
			break
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			log.Info().Msg("test")
		case "99":
			fmt.Fprintln(out, "Bye")
			return
		}
	}

	fmt.Fprintln(out, "Bye")
}
