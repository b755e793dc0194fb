/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package instance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetadata = `[Application]
name=org.example.Editor
runtime=runtime/org.freedesktop.Sdk/x86_64/23.08

[Instance]
instance-id=1234567
app-path=/var/lib/flatpak/app/org.example.Editor/x86_64/stable/abc/files
runtime-path=/var/lib/flatpak/runtime/org.freedesktop.Sdk/x86_64/23.08/def/files
branch=stable
flatpak-version=1.14.4
`

var testDescriptor = &Descriptor{
	AppPath:     "/run/host/app",
	RuntimePath: "/run/host/usr",
}

func TestParse(t *testing.T) {
	desc, err := Parse([]byte(sampleMetadata))
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/flatpak/app/org.example.Editor/x86_64/stable/abc/files", desc.AppPath)
	assert.Equal(t, "/var/lib/flatpak/runtime/org.freedesktop.Sdk/x86_64/23.08/def/files", desc.RuntimePath)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name     string
		metadata string
	}{
		{"no instance group", "[Application]\nname=org.example.Editor\n"},
		{"missing app path", "[Instance]\nruntime-path=/r\n"},
		{"missing runtime path", "[Instance]\napp-path=/a\n"},
		{"relative path", "[Instance]\napp-path=a\nruntime-path=/r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.metadata))
			require.Error(t, err)
			assert.Equal(t, ErrConfigMalformed, errors.Cause(err))
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flatpak-info")
	require.NoError(t, os.WriteFile(path, []byte(sampleMetadata), 0644))

	assert.True(t, SandboxedAt(path))

	desc, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(desc.AppPath, "/files"))
}

func TestLoadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")

	assert.False(t, SandboxedAt(path))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Equal(t, ErrConfigUnavailable, errors.Cause(err))
}

func TestToHost(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/app/bin/foo", "/run/host/app/bin/foo"},
		{"/app", "/run/host/app"},
		{"/app/", "/run/host/app/"},
		{"/usr/lib", "/run/host/usr/lib"},
		{"/usr/lib/x86_64-linux-gnu/libc.so.6", "/run/host/usr/lib/x86_64-linux-gnu/libc.so.6"},
		{"/application/data", "/application/data"},
		{"/usrlocal", "/usrlocal"},
		{"/home/user/file", "/home/user/file"},
		{"/lib64/ld-linux-x86-64.so.2", "/lib64/ld-linux-x86-64.so.2"},
		{"app/bin", "app/bin"},
		{"relative", "relative"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, testDescriptor.ToHost(tt.path))
		})
	}
}

func TestToHostStripsExactlyThePrefix(t *testing.T) {
	for _, path := range []string{"/app/a", "/app/a/b/c", "/app/share/icons/hicolor"} {
		host := testDescriptor.ToHost(path)
		assert.True(t, strings.HasPrefix(host, testDescriptor.AppPath))
		assert.Equal(t, path[len(AppPrefix):], host[len(testDescriptor.AppPath):])
	}
}

func TestToHostMatchRelative(t *testing.T) {
	tr := &Translator{Descriptor: testDescriptor, MatchRelative: true}

	assert.Equal(t, "/run/host/app/bin", tr.ToHost("app/bin"))
	assert.Equal(t, "/run/host/usr/lib", tr.ToHost("usr/lib"))
	assert.Equal(t, "/run/host/app/bin", tr.ToHost("/app/bin"))
	assert.Equal(t, "apple/bin", tr.ToHost("apple/bin"))
}
