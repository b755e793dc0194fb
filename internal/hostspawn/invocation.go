/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package hostspawn

import (
	"os/exec"
	"strings"

	"github.com/refi64/flatpak-unsandbox/internal/environ"
)

// A fully resolved host command. Nothing is run until the caller decides to.
type Invocation struct {
	program string
	args    []string
	env     []environ.Var
	dir     string
}

func (inv *Invocation) Program() string {
	return inv.program
}

// The arguments after the program name. The working directory is not part of these, see Argv.
func (inv *Invocation) Args() []string {
	return append([]string(nil), inv.args...)
}

func (inv *Invocation) Env() []environ.Var {
	return append([]environ.Var(nil), inv.env...)
}

// The environment in os.Environ format.
func (inv *Invocation) Environ() []string {
	result := make([]string, 0, len(inv.env))
	for _, v := range inv.env {
		result = append(result, v.String())
	}

	return result
}

// The host working directory, or "" to inherit the caller's. It usually doesn't exist inside the
// sandbox, so the broker is told about it instead of being started there.
func (inv *Invocation) Dir() string {
	return inv.dir
}

// The full argv the broker is started with, including the program and --directory if a working
// directory was set.
func (inv *Invocation) Argv() []string {
	argv := make([]string, 0, len(inv.args)+2)
	argv = append(argv, inv.program)

	if inv.dir == "" {
		return append(argv, inv.args...)
	}

	// --directory is a broker option, so it has to come before the linker.
	rest := inv.args
	if len(rest) != 0 && rest[0] == hostFlag {
		argv = append(argv, hostFlag)
		rest = rest[1:]
	}

	argv = append(argv, directoryFlag+"="+inv.dir)
	return append(argv, rest...)
}

// Returns an unstarted *exec.Cmd for the invocation. The command starts in the caller's working
// directory.
func (inv *Invocation) Command() *exec.Cmd {
	argv := inv.Argv()
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = inv.Environ()
	return cmd
}

func (inv *Invocation) String() string {
	return strings.Join(inv.Argv(), " ")
}
