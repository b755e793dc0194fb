/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package cmdarg

import (
	"os"
	"strings"
)

// Delimiters tried, in order, when sniffing path lists.
var DefaultDelimiters = []string{":", ","}

// Decides what kind of argument a raw string is by looking at which of its parts exist on the
// filesystem. The sandbox sees /app and /usr at the same places the host translation expects,
// so existence is checked on the sandbox side.
type Classifier struct {
	Exists     func(path string) bool
	Delimiters []string
}

func NewClassifier() *Classifier {
	return &Classifier{
		Exists:     exists,
		Delimiters: DefaultDelimiters,
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Classifies raw with the real filesystem.
func Guess(raw string) Argument {
	return NewClassifier().Classify(raw)
}

func (cl *Classifier) Classify(raw string) Argument {
	if raw != "" && cl.Exists(raw) {
		return Path(raw)
	}

	for _, delim := range cl.Delimiters {
		if paths, ok := cl.splitExisting(raw, delim); ok {
			return PathList(paths, delim)
		}
	}

	return Literal(raw)
}

// Every piece has to exist. Accepting a list when only some pieces exist would turn literals such
// as "key:/usr" into half-translated garbage.
func (cl *Classifier) splitExisting(raw, delim string) ([]string, bool) {
	if !strings.Contains(raw, delim) {
		return nil, false
	}

	pieces := strings.Split(raw, delim)
	for i, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" || !cl.Exists(piece) {
			return nil, false
		}

		pieces[i] = piece
	}

	return pieces, true
}
