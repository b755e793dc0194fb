/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package args

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/refi64/flatpak-unsandbox/internal/log"
)

type arrayTransformKind int

const (
	arrayTransformAdd arrayTransformKind = iota
	arrayTransformDel
	arrayTransformSet
)

var (
	arrayTransformKindToChar = map[arrayTransformKind]byte{
		arrayTransformAdd: '+',
		arrayTransformDel: '-',
		arrayTransformSet: ':',
	}

	charToArrayTransformKind = map[byte]arrayTransformKind{
		'+': arrayTransformAdd,
		'-': arrayTransformDel,
		':': arrayTransformSet,
	}
)

// A flag.Value editing a list of environment variable names: "+A,B" adds, "-A" removes and ":A,B"
// replaces the list. Can be given multiple times; transforms are applied in order.
type ArrayTransformValue struct {
	transforms []arrayTransform
}

type arrayTransform struct {
	kind  arrayTransformKind
	items []string
}

func (value ArrayTransformValue) String() string {
	parts := make([]string, 0, len(value.transforms))
	for _, transform := range value.transforms {
		parts = append(parts, string(arrayTransformKindToChar[transform.kind])+strings.Join(transform.items, ","))
	}

	return strings.Join(parts, " ")
}

func (value *ArrayTransformValue) Set(arg string) error {
	if len(arg) == 0 {
		return nil
	}

	kind, ok := charToArrayTransformKind[arg[0]]
	if !ok {
		return errors.Errorf("invalid array transform %q: must start with +, - or :", arg)
	}

	transform := arrayTransform{kind: kind}

	if len(arg) > 1 {
		for _, part := range strings.Split(arg[1:], ",") {
			if len(part) == 0 {
				return errors.New("items must not be empty")
			}

			if strings.Contains(part, "=") {
				return errors.Errorf("invalid variable name: %s", part)
			}

			transform.items = append(transform.items, part)
		}
	}

	value.transforms = append(value.transforms, transform)
	return nil
}

// Converts a slice of values to a set.
func sliceToSet(items []string) map[string]bool {
	result := map[string]bool{}

	for _, item := range items {
		result[item] = true
	}

	return result
}

func (value ArrayTransformValue) Apply(target *[]string) {
	for _, transform := range value.transforms {
		transform.apply(target)
	}
}

func (transform arrayTransform) apply(target *[]string) {
	switch transform.kind {
	case arrayTransformAdd:
		presentItems := sliceToSet(*target)

		for _, item := range transform.items {
			if !presentItems[item] {
				*target = append(*target, item)
				presentItems[item] = true
			} else {
				log.Debugf("item %s was already present", item)
			}
		}

	case arrayTransformDel:
		givenItems := sliceToSet(transform.items)
		newTarget := []string{}

		for _, item := range *target {
			if !givenItems[item] {
				newTarget = append(newTarget, item)
			}
		}

		*target = newTarget

	case arrayTransformSet:
		*target = append([]string{}, transform.items...)

	}
}
