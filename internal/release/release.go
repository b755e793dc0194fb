/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package release

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/refi64/flatpak-unsandbox/internal/config"
)

type Branch int

const (
	StableBranch Branch = iota
	EdgeBranch
)

func (branch Branch) String() string {
	switch branch {
	case StableBranch:
		return "stable"
	case EdgeBranch:
		return "edge"
	default:
		return "invalid"
	}
}

type ReleaseInfo struct {
	Branch  Branch
	Version string
}

// Returns the release info baked in at build time.
func Read() (*ReleaseInfo, error) {
	return parse(config.Version, config.Branch)
}

func parse(version, branch string) (*ReleaseInfo, error) {
	release := ReleaseInfo{Version: strings.TrimSpace(version)}
	if release.Version == "" {
		return nil, errors.New("no release version was set at build time")
	}

	switch strings.TrimSpace(branch) {
	case "stable":
		release.Branch = StableBranch
	case "edge":
		release.Branch = EdgeBranch
	default:
		return nil, errors.Errorf("invalid release branch: %s", branch)
	}

	return &release, nil
}
