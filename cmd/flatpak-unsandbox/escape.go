/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package main

import (
	"flag"

	"github.com/refi64/flatpak-unsandbox/internal/args"
	"github.com/refi64/flatpak-unsandbox/internal/cmdarg"
	"github.com/refi64/flatpak-unsandbox/internal/hostspawn"
	"github.com/refi64/flatpak-unsandbox/internal/log"
)

// Forwarded even with -clear-env, since host programs otherwise lose the app's data dirs.
var defaultPreserveEnv = []string{"XDG_DATA_HOME", "XDG_CONFIG_HOME", "XDG_CACHE_HOME"}

// Flags shared by every command that builds a host invocation.
type escapeFlags struct {
	env          args.EnvValue
	translateEnv bool
	clearEnv     bool
	preserveEnv  args.ArrayTransformValue
	cwd          string

	command []string
}

func (flags *escapeFlags) setFlags(fs *flag.FlagSet) {
	fs.Var(&flags.env, "env", "set an environment variable (NAME=VALUE, repeatable)")
	fs.BoolVar(&flags.translateEnv, "translate-env", false, "translate paths in the current environment")
	fs.BoolVar(&flags.clearEnv, "clear-env", false, "don't inherit the current environment")
	fs.Var(&flags.preserveEnv, "preserve-env", "edit the variables always forwarded (+A,B / -A / :A,B)")
	fs.StringVar(&flags.cwd, "cwd", "", "the working directory, as seen from the sandbox")
}

func (flags *escapeFlags) parsePositional(fs *flag.FlagSet) error {
	if fs.NArg() == 0 {
		return args.UsageErrorf("a command is required")
	}

	flags.command = fs.Args()
	return nil
}

func (flags *escapeFlags) options() hostspawn.Options {
	preserve := append([]string{}, defaultPreserveEnv...)
	flags.preserveEnv.Apply(&preserve)

	return hostspawn.Options{
		ClearEnv:     flags.clearEnv,
		TranslateEnv: flags.translateEnv,
		PreserveEnv:  preserve,
	}
}

func (flags *escapeFlags) escape(app *unsandboxApp) (*hostspawn.Invocation, error) {
	classifier := cmdarg.NewClassifier()

	command := make([]cmdarg.Argument, 0, len(flags.command))
	for _, word := range flags.command {
		command = append(command, classifier.Classify(word))
	}

	envs := map[string]cmdarg.Argument{}
	for _, v := range flags.env.Vars() {
		envs[v.Name] = classifier.Classify(v.Value)
	}

	log.Debugf("command: %v, envs: %v", command, envs)

	return app.unsandboxer().Escape(command, envs, flags.cwd, flags.options())
}
