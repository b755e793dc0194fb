/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

// Builds a flatpak-spawn --host command line that runs a sandbox binary on the host, through the
// host's dynamic linker and with the sandbox's libraries.
package hostspawn

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/refi64/flatpak-unsandbox/internal/cmdarg"
	"github.com/refi64/flatpak-unsandbox/internal/config"
	"github.com/refi64/flatpak-unsandbox/internal/environ"
	"github.com/refi64/flatpak-unsandbox/internal/ldcache"
	"github.com/refi64/flatpak-unsandbox/internal/log"
)

const (
	hostFlag        = "--host"
	directoryFlag   = "--directory"
	libraryPathFlag = "--library-path"
)

type LibraryResolver interface {
	DynamicLinker() (string, error)
	SearchPaths() ([]string, error)
}

type Options struct {
	// Start from an empty environment instead of the current one.
	ClearEnv bool

	// Copy the current environment, translating any values that look like paths.
	TranslateEnv bool

	// Names copied verbatim from the current environment if they aren't otherwise set, even when
	// ClearEnv is given.
	PreserveEnv []string
}

// Builds a host invocation.
type Builder struct {
	broker string

	Translator cmdarg.PathTranslator
	Resolver   LibraryResolver
	Classifier *cmdarg.Classifier

	// The environment of the current process.
	Environ func() []string

	Command []cmdarg.Argument
	Env     map[string]cmdarg.Argument
	Workdir string
	Options Options
}

func NewBuilder(tr cmdarg.PathTranslator) *Builder {
	return &Builder{
		broker:     config.BrokerPath,
		Translator: tr,
		Resolver:   ldcache.NewResolver(tr),
		Classifier: cmdarg.NewClassifier(),
		Environ:    os.Environ,
		Env:        map[string]cmdarg.Argument{},
	}
}

func (builder *Builder) SetBroker(broker string) {
	builder.broker = broker
}

func (builder *Builder) AddArg(arg cmdarg.Argument) {
	builder.Command = append(builder.Command, arg)
}

func (builder *Builder) AddEnv(name string, value cmdarg.Argument) {
	if builder.Env == nil {
		builder.Env = map[string]cmdarg.Argument{}
	}

	builder.Env[name] = value
}

func (builder *Builder) Build() (*Invocation, error) {
	linker, err := builder.Resolver.DynamicLinker()
	if err != nil {
		return nil, errors.Wrap(err, "failed to find the dynamic linker")
	}

	searchPaths, err := builder.Resolver.SearchPaths()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list library directories")
	}

	libraryPath := strings.Join(searchPaths, ":")

	args := []string{hostFlag, linker, libraryPathFlag, libraryPath}
	for _, arg := range builder.Command {
		args = append(args, arg.HostString(builder.Translator))
	}

	inv := &Invocation{
		program: builder.broker,
		args:    args,
		env:     builder.buildEnv(libraryPath).Vars(),
	}

	if builder.Workdir != "" {
		inv.dir = builder.Translator.ToHost(builder.Workdir)
	}

	log.Debug("exec", inv)
	log.Debug("ENV:", strings.Join(inv.Environ(), " "))

	return inv, nil
}

func (builder *Builder) buildEnv(libraryPath string) *environ.Env {
	var current *environ.Env
	if builder.Environ != nil {
		current = environ.Parse(builder.Environ())
	} else {
		current = environ.New()
	}

	var env *environ.Env
	if builder.Options.ClearEnv {
		env = environ.New()
	} else {
		env = environ.Parse(current.Environ())
	}

	if builder.Options.TranslateEnv {
		for _, v := range current.Vars() {
			env.Set(v.Name, builder.Classifier.Classify(v.Value).HostString(builder.Translator))
		}
	}

	for _, name := range builder.Options.PreserveEnv {
		if _, set := env.Get(name); set {
			continue
		}

		if value, ok := current.Get(name); ok {
			env.Set(name, value)
		}
	}

	names := make([]string, 0, len(builder.Env))
	for name := range builder.Env {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		env.Set(name, builder.Env[name].HostString(builder.Translator))
	}

	// Always last: nothing on the host can run with the wrong libraries.
	env.Set(config.LibraryPathEnv, libraryPath)
	return env
}
