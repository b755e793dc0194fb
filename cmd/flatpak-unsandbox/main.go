/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package main

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/refi64/flatpak-unsandbox/internal/args"
	"github.com/refi64/flatpak-unsandbox/internal/unsandbox"
)

type unsandboxApp struct {
	matchRelative bool
}

func (app *unsandboxApp) SetGlobalFlags(fs *flag.FlagSet) {
	fs.BoolVar(&app.matchRelative, "match-relative", app.matchRelative,
		"also translate paths written as app/... or usr/...")
}

func (app *unsandboxApp) unsandboxer() *unsandbox.Unsandboxer {
	u := unsandbox.New()
	u.MatchRelative = app.matchRelative
	return u
}

func main() {
	app := &unsandboxApp{}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")

	subcommands.Register(newRunCommand(app), "")
	subcommands.Register(newPrintCommand(app), "")
	subcommands.Register(newCheckCommand(app), "")
	subcommands.Register(newInfoCommand(app), "")
	subcommands.Register(newVersionCommand(app), "")

	args.Execute(app)
}
