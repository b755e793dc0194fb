/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package args

import "fmt"

type UsageError struct {
	message string
}

func (err *UsageError) Error() string {
	return err.message
}

func UsageErrorf(format string, args ...interface{}) error {
	return &UsageError{fmt.Sprintf(format, args...)}
}
