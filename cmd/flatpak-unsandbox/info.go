/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/google/subcommands"
	"github.com/refi64/flatpak-unsandbox/internal/args"
	"github.com/refi64/flatpak-unsandbox/internal/config"
	"github.com/refi64/flatpak-unsandbox/internal/ldcache"
	"github.com/refi64/flatpak-unsandbox/internal/log"
)

type infoCommand struct{}

func newInfoCommand(app args.App) subcommands.Command {
	return args.WrapSimpleCommand(app, &infoCommand{})
}

func (*infoCommand) Name() string {
	return "info"
}

func (*infoCommand) Synopsis() string {
	return "show how sandbox paths map to the host"
}

func (*infoCommand) Usage() string {
	return `info
	Show the instance's host paths, and the dynamic linker and library path host commands will
	be run with.
`
}

func (*infoCommand) SetFlags(fs *flag.FlagSet) {}

func (cmd *infoCommand) ParsePositional(fs *flag.FlagSet) error {
	return args.ExpectArgs(fs)
}

func (cmd *infoCommand) Execute(app args.App, fs *flag.FlagSet) subcommands.ExitStatus {
	tr, err := app.(*unsandboxApp).unsandboxer().Translator()
	if err != nil {
		return args.HandleError(err)
	}

	resolver := ldcache.NewResolver(tr)

	linker, err := resolver.DynamicLinker()
	if err != nil {
		return args.HandleError(err)
	}

	searchPaths, err := resolver.SearchPaths()
	if err != nil {
		return args.HandleError(err)
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 2, 1, ' ', tabwriter.AlignRight)
	defer writer.Flush()

	if stat, err := os.Stat(config.MetadataPath); err != nil {
		log.Debug("failed to stat metadata:", err)
	} else {
		fmt.Fprintf(writer, "Metadata:\t %s (written %s)\n", config.MetadataPath, humanize.Time(stat.ModTime()))
	}

	fmt.Fprintln(writer, "App:\t", tr.Descriptor.AppPath)
	fmt.Fprintln(writer, "Runtime:\t", tr.Descriptor.RuntimePath)
	fmt.Fprintln(writer, "Linker:\t", linker)
	fmt.Fprintln(writer, "Library path:\t", strings.Join(searchPaths, ":"))
	return subcommands.ExitSuccess
}
