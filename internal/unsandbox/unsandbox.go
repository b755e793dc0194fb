/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

// Turns a command meant for the sandbox into one that runs on the host.
package unsandbox

import (
	"github.com/pkg/errors"
	"github.com/refi64/flatpak-unsandbox/internal/cmdarg"
	"github.com/refi64/flatpak-unsandbox/internal/hostspawn"
	"github.com/refi64/flatpak-unsandbox/internal/instance"
	"github.com/refi64/flatpak-unsandbox/internal/log"
	"github.com/refi64/flatpak-unsandbox/internal/sessionbus"
)

var (
	ErrNotSandboxed = errors.New("the program is not sandboxed")
	ErrNoPermission = errors.New("no --talk-name=org.freedesktop.Flatpak permission for this Flatpak")
)

type Unsandboxer struct {
	Sandboxed      func() bool
	CanSpawnOnHost func() (bool, error)
	LoadDescriptor func() (*instance.Descriptor, error)
	NewBuilder     func(tr *instance.Translator) *hostspawn.Builder

	// Also translate app/... and usr/... (see instance.Translator).
	MatchRelative bool
}

func New() *Unsandboxer {
	return &Unsandboxer{
		Sandboxed:      instance.Sandboxed,
		CanSpawnOnHost: sessionbus.CanSpawnOnHost,
		LoadDescriptor: instance.Load,
		NewBuilder: func(tr *instance.Translator) *hostspawn.Builder {
			return hostspawn.NewBuilder(tr)
		},
	}
}

// Checks that escaping is possible at all.
func (u *Unsandboxer) Check() error {
	if !u.Sandboxed() {
		return ErrNotSandboxed
	}

	ok, err := u.CanSpawnOnHost()
	if err != nil {
		return err
	}

	if !ok {
		return ErrNoPermission
	}

	log.Debug("Sandbox passed checks")
	return nil
}

// Loads the instance metadata for a new escape attempt, after checking it's possible.
func (u *Unsandboxer) Translator() (*instance.Translator, error) {
	if err := u.Check(); err != nil {
		return nil, err
	}

	desc, err := u.LoadDescriptor()
	if err != nil {
		return nil, err
	}

	tr := instance.NewTranslator(desc)
	tr.MatchRelative = u.MatchRelative
	return tr, nil
}

// Builds the host invocation for command. cwd may be empty to inherit the current directory. The
// returned invocation has not been started.
func (u *Unsandboxer) Escape(command []cmdarg.Argument, envs map[string]cmdarg.Argument, cwd string,
	options hostspawn.Options) (*hostspawn.Invocation, error) {
	tr, err := u.Translator()
	if err != nil {
		return nil, err
	}

	builder := u.NewBuilder(tr)
	builder.Command = append(builder.Command, command...)
	for name, value := range envs {
		builder.AddEnv(name, value)
	}
	builder.Workdir = cwd
	builder.Options = options

	return builder.Build()
}

func Escape(command []cmdarg.Argument, envs map[string]cmdarg.Argument, cwd string,
	options hostspawn.Options) (*hostspawn.Invocation, error) {
	return New().Escape(command, envs, cwd, options)
}
