/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package environ

import (
	"os"
	"strings"
)

type Var struct {
	Name  string
	Value string
}

func (v Var) String() string {
	return v.Name + "=" + v.Value
}

// An ordered environment. Setting an existing name replaces its value in place, so the last
// write wins while the first position is kept.
type Env struct {
	vars  []Var
	index map[string]int
}

func New() *Env {
	return &Env{index: map[string]int{}}
}

// Little helper to split environment variables. Entries without a '=' have an empty value.
func SplitEnv(env string) (string, string) {
	parts := strings.SplitN(env, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}

	return parts[0], parts[1]
}

// Parses os.Environ-formatted environment variables.
func Parse(environ []string) *Env {
	env := New()

	for _, entry := range environ {
		name, value := SplitEnv(entry)
		if name == "" {
			continue
		}

		env.Set(name, value)
	}

	return env
}

func Current() *Env {
	return Parse(os.Environ())
}

func (env *Env) Set(name, value string) {
	if i, ok := env.index[name]; ok {
		env.vars[i].Value = value
		return
	}

	env.index[name] = len(env.vars)
	env.vars = append(env.vars, Var{Name: name, Value: value})
}

func (env *Env) Get(name string) (string, bool) {
	if i, ok := env.index[name]; ok {
		return env.vars[i].Value, true
	}

	return "", false
}

func (env *Env) Len() int {
	return len(env.vars)
}

// Returns a copy of the variables in order.
func (env *Env) Vars() []Var {
	return append([]Var(nil), env.vars...)
}

// Returns the variables in os.Environ format.
func (env *Env) Environ() []string {
	result := make([]string, 0, len(env.vars))
	for _, v := range env.vars {
		result = append(result, v.String())
	}

	return result
}
