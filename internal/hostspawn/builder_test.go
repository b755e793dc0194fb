/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package hostspawn

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/refi64/flatpak-unsandbox/internal/cmdarg"
	"github.com/refi64/flatpak-unsandbox/internal/environ"
	"github.com/refi64/flatpak-unsandbox/internal/instance"
	"github.com/refi64/flatpak-unsandbox/internal/ldcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDescriptor = &instance.Descriptor{
	AppPath:     "/run/host/app",
	RuntimePath: "/run/host/usr",
}

type fakeResolver struct {
	linker    string
	dirs      []string
	linkerErr error
	dirsErr   error
}

func (res *fakeResolver) DynamicLinker() (string, error) {
	return res.linker, res.linkerErr
}

func (res *fakeResolver) SearchPaths() ([]string, error) {
	return res.dirs, res.dirsErr
}

func newTestBuilder(env []string, existing ...string) *Builder {
	set := map[string]bool{}
	for _, path := range existing {
		set[path] = true
	}

	builder := NewBuilder(testDescriptor)
	builder.SetBroker("/usr/bin/flatpak-spawn")
	builder.Resolver = &fakeResolver{
		linker: "/run/host/usr/lib/x86_64-linux-gnu/ld-linux-x86-64.so.2",
		dirs:   []string{"/run/host/app/lib", "/run/host/usr/lib/x86_64-linux-gnu"},
	}
	builder.Classifier = &cmdarg.Classifier{
		Exists:     func(path string) bool { return set[path] },
		Delimiters: cmdarg.DefaultDelimiters,
	}
	builder.Environ = func() []string { return env }
	return builder
}

const testLibraryPath = "/run/host/app/lib:/run/host/usr/lib/x86_64-linux-gnu"

func envMap(vars []environ.Var) map[string]string {
	result := map[string]string{}
	for _, v := range vars {
		result[v.Name] = v.Value
	}

	return result
}

func TestBuildEmptyCommand(t *testing.T) {
	builder := newTestBuilder(nil)

	inv, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/flatpak-spawn", inv.Program())
	assert.Equal(t, []string{
		"--host",
		"/run/host/usr/lib/x86_64-linux-gnu/ld-linux-x86-64.so.2",
		"--library-path",
		testLibraryPath,
	}, inv.Args())
	assert.Equal(t, "", inv.Dir())
}

func TestBuildTranslatesCommand(t *testing.T) {
	builder := newTestBuilder(nil)
	builder.AddArg(cmdarg.Path("/app/bin/foo"))
	builder.AddArg(cmdarg.Literal("--flag"))
	builder.AddArg(cmdarg.Literal("hello"))
	builder.AddArg(cmdarg.PathList([]string{"/app/share", "/usr/share"}, ","))

	inv, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/run/host/app/bin/foo",
		"--flag",
		"hello",
		"/run/host/app/share,/run/host/usr/share",
	}, inv.Args()[4:])
}

func TestBuildClearEnvOnlyLibraryPath(t *testing.T) {
	builder := newTestBuilder([]string{"HOME=/home/user", "PATH=/app/bin:/usr/bin"})
	builder.Options.ClearEnv = true

	inv, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, []environ.Var{{Name: "LD_LIBRARY_PATH", Value: testLibraryPath}}, inv.Env())
}

func TestBuildInheritsEnvUntranslated(t *testing.T) {
	builder := newTestBuilder([]string{"HOME=/home/user", "DATA=/app/share"}, "/app/share")

	inv, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"HOME=/home/user",
		"DATA=/app/share",
		"LD_LIBRARY_PATH=" + testLibraryPath,
	}, inv.Environ())
}

func TestBuildTranslateEnv(t *testing.T) {
	builder := newTestBuilder(
		[]string{"SEARCH=/app/lib:/usr/lib", "NAME=value:other", "ONE=/app/bin/foo"},
		"/app/lib", "/usr/lib", "/app/bin/foo")
	builder.Options.TranslateEnv = true

	inv, err := builder.Build()
	require.NoError(t, err)

	env := envMap(inv.Env())
	assert.Equal(t, "/run/host/app/lib:/run/host/usr/lib", env["SEARCH"])
	assert.Equal(t, "value:other", env["NAME"])
	assert.Equal(t, "/run/host/app/bin/foo", env["ONE"])
}

func TestBuildClearAndTranslateEnv(t *testing.T) {
	builder := newTestBuilder([]string{"DATA=/app/share"}, "/app/share")
	builder.Options.ClearEnv = true
	builder.Options.TranslateEnv = true

	inv, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"DATA=/run/host/app/share", "LD_LIBRARY_PATH=" + testLibraryPath}, inv.Environ())
}

func TestBuildExtraEnvOverrides(t *testing.T) {
	builder := newTestBuilder([]string{"B=old", "A=keep"})
	builder.AddEnv("B", cmdarg.Literal("new"))
	builder.AddEnv("C", cmdarg.Path("/app/etc"))
	builder.AddEnv("LD_LIBRARY_PATH", cmdarg.Literal("/wrong"))

	inv, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"B=new",
		"A=keep",
		"C=/run/host/app/etc",
		"LD_LIBRARY_PATH=" + testLibraryPath,
	}, inv.Environ())
}

func TestBuildLibraryPathBeatsInherited(t *testing.T) {
	builder := newTestBuilder([]string{"LD_LIBRARY_PATH=/inherited"})

	inv, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"LD_LIBRARY_PATH=" + testLibraryPath}, inv.Environ())
}

func TestBuildPreserveEnv(t *testing.T) {
	builder := newTestBuilder([]string{"XDG_DATA_HOME=/home/user/.var/app/x/data", "OTHER=1"})
	builder.Options.ClearEnv = true
	builder.Options.PreserveEnv = []string{"XDG_DATA_HOME", "XDG_CACHE_HOME"}

	inv, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"XDG_DATA_HOME=/home/user/.var/app/x/data",
		"LD_LIBRARY_PATH=" + testLibraryPath,
	}, inv.Environ())
}

func TestBuildPreserveEnvKeepsTranslation(t *testing.T) {
	builder := newTestBuilder([]string{"XDG_DATA_DIRS=/app/share:/usr/share"}, "/app/share", "/usr/share")
	builder.Options.TranslateEnv = true
	builder.Options.PreserveEnv = []string{"XDG_DATA_DIRS"}

	inv, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, "/run/host/app/share:/run/host/usr/share", envMap(inv.Env())["XDG_DATA_DIRS"])
}

func TestBuildWorkdir(t *testing.T) {
	builder := newTestBuilder(nil)
	builder.Workdir = "/app/share/data"

	inv, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, "/run/host/app/share/data", inv.Dir())

	assert.NotContains(t, inv.Args(), "--directory=/run/host/app/share/data")
	assert.Equal(t, []string{"/usr/bin/flatpak-spawn", "--host", "--directory=/run/host/app/share/data"},
		inv.Argv()[:3])
	assert.Equal(t, inv.Args()[1:], inv.Argv()[3:])

	cmd := inv.Command()
	assert.Equal(t, "", cmd.Dir)
	assert.Equal(t, inv.Argv(), cmd.Args)
	assert.Equal(t, inv.Environ(), cmd.Env)
}

func TestBuildResolverFailure(t *testing.T) {
	builder := newTestBuilder(nil)
	builder.Resolver = &fakeResolver{linkerErr: ldcache.ErrLinkerNotFound}

	_, err := builder.Build()
	assert.Equal(t, ldcache.ErrLinkerNotFound, errors.Cause(err))

	builder.Resolver = &fakeResolver{linker: "/lib/ld.so", dirsErr: ldcache.ErrSubprocess}

	_, err = builder.Build()
	assert.Equal(t, ldcache.ErrSubprocess, errors.Cause(err))
}

func TestInvocationIsACopy(t *testing.T) {
	builder := newTestBuilder(nil)

	inv, err := builder.Build()
	require.NoError(t, err)

	args := inv.Args()
	args[0] = "--changed"
	assert.Equal(t, "--host", inv.Args()[0])
}
