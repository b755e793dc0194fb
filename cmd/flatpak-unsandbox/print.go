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

type printCommand struct {
	escapeFlags
}

func newPrintCommand(app args.App) subcommands.Command {
	return args.WrapSimpleCommand(app, &printCommand{})
}

func (*printCommand) Name() string {
	return "print"
}

func (*printCommand) Synopsis() string {
	return "print the host command without running it"
}

func (*printCommand) Usage() string {
	return `print [options] <command...>:
	Show what run would execute: the program and its arguments one per line, then the working
	directory (if any) and the environment.
`
}

func (cmd *printCommand) SetFlags(fs *flag.FlagSet) {
	cmd.setFlags(fs)
}

func (cmd *printCommand) ParsePositional(fs *flag.FlagSet) error {
	return cmd.parsePositional(fs)
}

func (cmd *printCommand) Execute(app args.App, fs *flag.FlagSet) subcommands.ExitStatus {
	inv, err := cmd.escape(app.(*unsandboxApp))
	if err != nil {
		return args.HandleError(err)
	}

	for _, arg := range inv.Argv() {
		log.Info(arg)
	}

	log.Info()

	if inv.Dir() != "" {
		log.Infof("cwd: %s", inv.Dir())
	}

	for _, entry := range inv.Environ() {
		log.Info(entry)
	}

	return subcommands.ExitSuccess
}
