/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package main

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/refi64/flatpak-unsandbox/internal/args"
	"github.com/refi64/flatpak-unsandbox/internal/log"
)

type checkCommand struct {
	quiet bool
}

func newCheckCommand(app args.App) subcommands.Command {
	return args.WrapSimpleCommand(app, &checkCommand{})
}

func (*checkCommand) Name() string {
	return "check"
}

func (*checkCommand) Synopsis() string {
	return "check whether commands can be run on the host"
}

func (*checkCommand) Usage() string {
	return `check [-q]:
	Exit successfully if this process is sandboxed and allowed to talk to org.freedesktop.Flatpak.
`
}

func (cmd *checkCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.quiet, "q", false, "only set the exit status")
}

func (cmd *checkCommand) ParsePositional(fs *flag.FlagSet) error {
	return args.ExpectArgs(fs)
}

func (cmd *checkCommand) Execute(app args.App, fs *flag.FlagSet) subcommands.ExitStatus {
	if err := app.(*unsandboxApp).unsandboxer().Check(); err != nil {
		if cmd.quiet {
			log.Debug(err)
			return subcommands.ExitFailure
		}

		return args.HandleError(err)
	}

	if !cmd.quiet {
		log.Info("ok")
	}

	return subcommands.ExitSuccess
}
