/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

// Flatpak instance metadata, and translation of sandbox paths to the host paths they're mounted
// from.
package instance

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/refi64/flatpak-unsandbox/internal/config"
	"github.com/refi64/flatpak-unsandbox/internal/log"
	"gopkg.in/ini.v1"
)

var (
	ErrConfigUnavailable = errors.New("instance metadata is unavailable")
	ErrConfigMalformed   = errors.New("instance metadata is malformed")
)

const (
	instanceSection = "Instance"
	appPathKey      = "app-path"
	runtimePathKey  = "runtime-path"
)

// The host directories backing the sandbox's /app and /usr. Created once per escape attempt
// and never cached, as a different launch may have different roots.
type Descriptor struct {
	AppPath     string
	RuntimePath string
}

// Whether the current process runs inside a Flatpak sandbox.
func Sandboxed() bool {
	return SandboxedAt(config.MetadataPath)
}

func SandboxedAt(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func Load() (*Descriptor, error) {
	return LoadFile(config.MetadataPath)
}

func LoadFile(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrConfigUnavailable, "reading %s: %v", path, err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Descriptor, error) {
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return nil, errors.Wrapf(ErrConfigUnavailable, "parsing metadata: %v", err)
	}

	section, err := file.GetSection(instanceSection)
	if err != nil {
		return nil, errors.Wrapf(ErrConfigMalformed, "missing [%s] group", instanceSection)
	}

	desc := &Descriptor{}
	targets := []struct {
		key    string
		target *string
	}{
		{appPathKey, &desc.AppPath},
		{runtimePathKey, &desc.RuntimePath},
	}

	for _, item := range targets {
		key, err := section.GetKey(item.key)
		if err != nil {
			return nil, errors.Wrapf(ErrConfigMalformed, "missing %s in [%s]", item.key, instanceSection)
		}

		value := key.String()
		if !filepath.IsAbs(value) {
			return nil, errors.Wrapf(ErrConfigMalformed, "%s is not an absolute path: %q", item.key, value)
		}

		*item.target = value
	}

	log.Debugf("app path: %s, runtime path: %s", desc.AppPath, desc.RuntimePath)
	return desc, nil
}
