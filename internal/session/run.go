/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

// Run a host invocation from the current process.
package session

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
	"github.com/refi64/flatpak-unsandbox/internal/hostspawn"
	"github.com/refi64/flatpak-unsandbox/internal/log"
	"golang.org/x/sys/unix"
)

func convertStateToExitCode(state *os.ProcessState) int {
	// XXX: syscall is deprecated, but this cast will fail if it directly jumps to
	// unix.WaitStatus.
	waitStatus := unix.WaitStatus(state.Sys().(syscall.WaitStatus))

	if waitStatus.Signaled() {
		// Treat a signal like most shells do, as 128 + the signal value.
		return 128 + int(waitStatus.Signal())
	} else if waitStatus.Exited() {
		return waitStatus.ExitStatus()
	} else {
		log.Alertf("Unexpected wait status %d", int(waitStatus))
		return 1
	}
}

// Runs the invocation with our stdio and waits for it, returning its exit code.
func Run(inv *hostspawn.Invocation) (int, error) {
	cmd := inv.Command()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Debug("running:", inv)

	if err := cmd.Run(); err != nil {
		// Handle ExitError later on.
		if _, ok := err.(*exec.ExitError); !ok {
			return 0, errors.Wrapf(err, "failed to run %s", inv.Program())
		}
	}

	return convertStateToExitCode(cmd.ProcessState), nil
}

// Replaces the current process with the invocation. Only returns on failure. The working directory
// is left alone, the broker changes into inv.Dir() on the host.
func Exec(inv *hostspawn.Invocation) error {
	log.Debug("exec:", inv)

	if err := unix.Exec(inv.Program(), inv.Argv(), inv.Environ()); err != nil {
		return errors.Wrapf(err, "failed to exec %s", inv.Program())
	}

	panic("should not reach here")
}
