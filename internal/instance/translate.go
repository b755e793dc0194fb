/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package instance

import "strings"

const (
	AppPrefix     = "/app"
	RuntimePrefix = "/usr"
)

// Rewrites sandbox paths into host paths.
//
// Prefixes are matched per path component, so /app and /app/bin match but /application does not.
// Relative spellings (app/bin, usr/lib) are left alone unless MatchRelative is set, in which case
// they map onto the same host roots.
type Translator struct {
	Descriptor    *Descriptor
	MatchRelative bool
}

func NewTranslator(desc *Descriptor) *Translator {
	return &Translator{Descriptor: desc}
}

// Shorthand for a Translator with the default policy.
func (desc *Descriptor) ToHost(path string) string {
	return NewTranslator(desc).ToHost(path)
}

func (tr *Translator) ToHost(path string) string {
	roots := []struct {
		prefix string
		host   string
	}{
		{AppPrefix, tr.Descriptor.AppPath},
		{RuntimePrefix, tr.Descriptor.RuntimePath},
	}

	for _, root := range roots {
		if rest, ok := cutPrefix(path, root.prefix); ok {
			return root.host + rest
		}

		if tr.MatchRelative {
			if rest, ok := cutPrefix(path, strings.TrimPrefix(root.prefix, "/")); ok {
				return root.host + rest
			}
		}
	}

	return path
}

// Like strings.CutPrefix, but only succeeds on a component boundary.
func cutPrefix(path, prefix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}

	rest := path[len(prefix):]
	if rest != "" && rest[0] != '/' {
		return "", false
	}

	return rest, true
}
