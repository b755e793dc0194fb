/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

// Command arguments and environment values that may refer to sandbox paths.
package cmdarg

import (
	"fmt"
	"strings"
)

type Kind int

const (
	LiteralKind Kind = iota
	PathKind
	PathListKind
)

func (kind Kind) String() string {
	switch kind {
	case LiteralKind:
		return "literal"
	case PathKind:
		return "path"
	case PathListKind:
		return "path list"
	default:
		return "invalid"
	}
}

// Anything that can map a sandbox path to a host path, usually an *instance.Translator or an
// *instance.Descriptor.
type PathTranslator interface {
	ToHost(path string) string
}

// A single argument or environment value. Literals are passed through untouched; paths and the
// elements of path lists are translated to host paths.
type Argument struct {
	Kind Kind

	// Set for literals and single paths.
	Value string

	// Set for path lists, in their original order.
	Paths     []string
	Delimiter string
}

func Literal(value string) Argument {
	return Argument{Kind: LiteralKind, Value: value}
}

func Path(path string) Argument {
	return Argument{Kind: PathKind, Value: path}
}

func PathList(paths []string, delimiter string) Argument {
	return Argument{
		Kind:      PathListKind,
		Paths:     append([]string(nil), paths...),
		Delimiter: delimiter,
	}
}

// Returns the value as it should be seen by the host.
func (arg Argument) HostString(tr PathTranslator) string {
	switch arg.Kind {
	case PathKind:
		return tr.ToHost(arg.Value)

	case PathListKind:
		translated := make([]string, len(arg.Paths))
		for i, path := range arg.Paths {
			translated[i] = tr.ToHost(path)
		}

		return strings.Join(translated, arg.Delimiter)

	default:
		return arg.Value
	}
}

// Returns the value as seen inside the sandbox.
func (arg Argument) SandboxString() string {
	if arg.Kind == PathListKind {
		return strings.Join(arg.Paths, arg.Delimiter)
	}

	return arg.Value
}

func (arg Argument) String() string {
	switch arg.Kind {
	case PathKind:
		return fmt.Sprintf("Path(%q)", arg.Value)
	case PathListKind:
		return fmt.Sprintf("PathList(%q, %q)", arg.Paths, arg.Delimiter)
	default:
		return fmt.Sprintf("Literal(%q)", arg.Value)
	}
}
