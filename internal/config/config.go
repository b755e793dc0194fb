/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

// Build-time defaults. Distributions can override any of these with
// -ldflags "-X github.com/refi64/flatpak-unsandbox/internal/config.Name=value".
package config

var (
	// The instance metadata file Flatpak writes into every sandbox.
	MetadataPath = "/.flatpak-info"

	// The host-spawn broker shipped in the runtime.
	BrokerPath = "/usr/bin/flatpak-spawn"

	// Looked up in $PATH.
	LdconfigName = "ldconfig"

	LibraryPathEnv = "LD_LIBRARY_PATH"

	FlatpakBusName    = "org.freedesktop.Flatpak"
	FlatpakObjectPath = "/org/freedesktop/Flatpak/Development"

	Version = "0.1.0"
	Branch  = "stable"
)
