/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package main

import (
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/refi64/flatpak-unsandbox/internal/args"
	"github.com/refi64/flatpak-unsandbox/internal/session"
)

type runCommand struct {
	escapeFlags

	exec bool
}

func newRunCommand(app args.App) subcommands.Command {
	return args.WrapSimpleCommand(app, &runCommand{})
}

func (*runCommand) Name() string {
	return "run"
}

func (*runCommand) Synopsis() string {
	return "run a command on the host"
}

func (*runCommand) Usage() string {
	return `run [options] <command...>:
	Run a command outside the sandbox. Arguments and -env values naming existing files, or lists
	of them separated by : or ,, are translated to their host paths. Exits with the command's exit
	status.
`
}

func (cmd *runCommand) SetFlags(fs *flag.FlagSet) {
	cmd.setFlags(fs)
	fs.BoolVar(&cmd.exec, "exec", false, "replace this process instead of waiting for the command")
}

func (cmd *runCommand) ParsePositional(fs *flag.FlagSet) error {
	return cmd.parsePositional(fs)
}

func (cmd *runCommand) Execute(app args.App, fs *flag.FlagSet) subcommands.ExitStatus {
	inv, err := cmd.escape(app.(*unsandboxApp))
	if err != nil {
		return args.HandleError(err)
	}

	if cmd.exec {
		return args.HandleError(session.Exec(inv))
	}

	exitCode, err := session.Run(inv)
	if err != nil {
		return args.HandleError(err)
	}

	os.Exit(exitCode)
	return subcommands.ExitSuccess // ?
}
