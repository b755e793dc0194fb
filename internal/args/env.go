/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package args

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/refi64/flatpak-unsandbox/internal/environ"
)

// A repeatable NAME=VALUE flag. Later assignments to the same name win.
type EnvValue struct {
	env *environ.Env
}

func (value EnvValue) String() string {
	if value.env == nil {
		return ""
	}

	return strings.Join(value.env.Environ(), " ")
}

func (value *EnvValue) Set(arg string) error {
	if !strings.Contains(arg, "=") {
		return errors.Errorf("expected NAME=VALUE, got %q", arg)
	}

	name, val := environ.SplitEnv(arg)
	if name == "" {
		return errors.Errorf("empty variable name in %q", arg)
	}

	if value.env == nil {
		value.env = environ.New()
	}

	value.env.Set(name, val)
	return nil
}

func (value EnvValue) Vars() []environ.Var {
	if value.env == nil {
		return nil
	}

	return value.env.Vars()
}
