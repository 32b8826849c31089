// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/keyman/internal/i18n"
	"github.com/toeirei/keyman/internal/store"
	"golang.org/x/term"
)

var (
	nameStyle   = lipgloss.NewStyle().Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	labelStyle  = lipgloss.NewStyle().Faint(true)
)

// userError is an error whose message is already translated and ready to be
// printed as the single line the user sees.
type userError struct {
	msg   string
	cause error
}

func newUserError(msg string, cause error) error { return &userError{msg: msg, cause: cause} }

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.cause }

// usage renders a command line hint such as `keyman list`.
func usage(args ...string) string {
	return BinName + " " + strings.Join(args, " ")
}

// failure turns a registry error into a user-facing line. Unknown names get
// the typo hint; everything else is prefixed with the translated failedID.
func failure(name string, err error, failedID string) error {
	if errors.Is(err, store.ErrNotFound) {
		return &userError{msg: i18n.T("error.not_found", name, usage("list")), cause: err}
	}
	return &userError{msg: i18n.T(failedID, err), cause: err}
}

// stdinIsTerminal reports whether r is an interactive terminal. Tests swap it.
var stdinIsTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm prints prompt and reads one line; only "yes" or "y" confirm.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "yes" || answer == "y"
}
