/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package environ

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitEnv(t *testing.T) {
	tests := []struct {
		entry, name, value string
	}{
		{"A=1", "A", "1"},
		{"URL=http://host?a=1&b=2", "URL", "http://host?a=1&b=2"},
		{"EMPTY=", "EMPTY", ""},
		{"BARE", "BARE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			name, value := SplitEnv(tt.entry)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestSetReplacesInPlace(t *testing.T) {
	env := Parse([]string{"A=1", "B=2", "C=3"})
	env.Set("B", "new")
	env.Set("D", "4")

	assert.Equal(t, []string{"A=1", "B=new", "C=3", "D=4"}, env.Environ())
	assert.Equal(t, 4, env.Len())
}

func TestParseDuplicatesLastWins(t *testing.T) {
	env := Parse([]string{"A=1", "B=2", "A=3", "=ignored"})

	value, ok := env.Get("A")
	assert.True(t, ok)
	assert.Equal(t, "3", value)
	assert.Equal(t, []Var{{"A", "3"}, {"B", "2"}}, env.Vars())
}

func TestGetMissing(t *testing.T) {
	_, ok := New().Get("NOPE")
	assert.False(t, ok)
}

func TestVarsIsACopy(t *testing.T) {
	env := Parse([]string{"A=1"})
	vars := env.Vars()
	vars[0].Value = "changed"

	value, _ := env.Get("A")
	assert.Equal(t, "1", value)
}
