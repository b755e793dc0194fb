/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

// Finds the dynamic linker and library directories by asking ldconfig. Everything returned has
// already been translated to host paths.
package ldcache

import (
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/refi64/flatpak-unsandbox/internal/cmdarg"
	"github.com/refi64/flatpak-unsandbox/internal/config"
	"github.com/refi64/flatpak-unsandbox/internal/log"
)

var (
	ErrLinkerNotFound = errors.New("dynamic linker not found in the ldconfig cache")
	ErrSubprocess     = errors.New("ldconfig query failed")
)

const (
	linkerPrefix    = "ld-linux"
	linkerSeparator = "=>"
)

// Runs ldconfig with the given arguments and returns its stdout.
type QueryFunc func(args ...string) ([]byte, error)

type Resolver struct {
	Translator cmdarg.PathTranslator
	Query      QueryFunc
}

func NewResolver(tr cmdarg.PathTranslator) *Resolver {
	return &Resolver{
		Translator: tr,
		Query:      RunLdconfig,
	}
}

func RunLdconfig(args ...string) ([]byte, error) {
	ldconfig, err := exec.LookPath(config.LdconfigName)
	if err != nil {
		return nil, errors.Wrapf(ErrSubprocess, "finding %s: %v", config.LdconfigName, err)
	}

	log.Debug("running:", ldconfig, strings.Join(args, " "))

	out, err := exec.Command(ldconfig, args...).Output()
	if err != nil {
		// ldconfig -v also tries to rebuild the cache, which fails as a regular user after the
		// listing has already been printed.
		if _, ok := err.(*exec.ExitError); ok && len(out) != 0 {
			log.Debugf("%s %s: %v (ignored)", ldconfig, strings.Join(args, " "), err)
		} else {
			return nil, errors.Wrapf(ErrSubprocess, "running %s: %v", ldconfig, err)
		}
	}

	return out, nil
}

func (res *Resolver) query(args ...string) (string, error) {
	out, err := res.Query(args...)
	if err != nil {
		if errors.Cause(err) == ErrSubprocess {
			return "", err
		}

		return "", errors.Wrapf(ErrSubprocess, "ldconfig %s: %v", strings.Join(args, " "), err)
	}

	if !utf8.Valid(out) {
		return "", errors.Wrapf(ErrSubprocess, "ldconfig %s: output is not valid UTF-8", strings.Join(args, " "))
	}

	return string(out), nil
}

// The host path of the dynamic linker.
func (res *Resolver) DynamicLinker() (string, error) {
	out, err := res.query("-p")
	if err != nil {
		return "", err
	}

	linker, ok := ParseLinker(out)
	if !ok {
		return "", ErrLinkerNotFound
	}

	return res.Translator.ToHost(linker), nil
}

// The host paths of every library directory ldconfig searches, in search order.
func (res *Resolver) SearchPaths() ([]string, error) {
	out, err := res.query("-v")
	if err != nil {
		return nil, err
	}

	dirs := ParseSearchPaths(out)
	if len(dirs) == 0 {
		return nil, errors.Wrap(ErrSubprocess, "ldconfig -v listed no library directories")
	}

	seen := map[string]bool{}
	result := make([]string, 0, len(dirs))

	for _, dir := range dirs {
		host := res.Translator.ToHost(dir)
		if !seen[host] {
			seen[host] = true
			result = append(result, host)
		}
	}

	return result, nil
}

// Finds the first entry of `ldconfig -p` output naming the dynamic linker, e.g.:
//	ld-linux-x86-64.so.2 (libc6,x86-64) => /lib64/ld-linux-x86-64.so.2
func ParseLinker(out string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, linkerPrefix) {
			continue
		}

		parts := strings.SplitN(line, linkerSeparator, 2)
		if len(parts) != 2 {
			continue
		}

		if path := strings.TrimSpace(parts[1]); path != "" {
			return path, true
		}
	}

	return "", false
}

// Returns the directory headers of `ldconfig -v` output, which look like:
//	/usr/lib64: (from /etc/ld.so.conf.d/lib64.conf:1)
// Library lines below each header are indented and skipped.
func ParseSearchPaths(out string) []string {
	var dirs []string

	for _, line := range strings.Split(out, "\n") {
		if line == "" || line[0] == '\t' || line[0] == ' ' {
			continue
		}

		dir := line
		if idx := strings.Index(line, ":"); idx != -1 {
			dir = line[:idx]
		}

		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}
