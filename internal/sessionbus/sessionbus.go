/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package sessionbus

import (
	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
	"github.com/refi64/flatpak-unsandbox/internal/config"
	"github.com/refi64/flatpak-unsandbox/internal/log"
)

/*
	flatpak-spawn --host goes through org.freedesktop.Flatpak.Development on the session bus,
	which is only reachable with --talk-name=org.freedesktop.Flatpak. The bus proxy drops calls
	to names we can't talk to, so a Peer.Ping against the service doubles as a permission check.
	Only whether the call succeeded matters; there is no reply payload.
*/

var ErrIpc = errors.New("session bus is unavailable")

const peerPing = "org.freedesktop.DBus.Peer.Ping"

// The part of *dbus.Conn the prober uses.
type Conn interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
	Close() error
}

type Prober struct {
	Connect    func() (Conn, error)
	Ping       func(obj dbus.BusObject) error
	BusName    string
	ObjectPath dbus.ObjectPath
}

func NewProber() *Prober {
	return &Prober{
		Connect:    connectSessionBus,
		Ping:       ping,
		BusName:    config.FlatpakBusName,
		ObjectPath: dbus.ObjectPath(config.FlatpakObjectPath),
	}
}

func connectSessionBus() (Conn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}

	return conn, nil
}

func ping(obj dbus.BusObject) error {
	return obj.Call(peerPing, 0).Err
}

// Reports whether the Flatpak development service answers a ping. An error is only returned if
// the bus itself couldn't be reached.
func (prober *Prober) CanSpawnOnHost() (bool, error) {
	conn, err := prober.Connect()
	if err != nil {
		return false, errors.Wrapf(ErrIpc, "connecting to session bus: %v", err)
	}
	defer conn.Close()

	if err := prober.Ping(conn.Object(prober.BusName, prober.ObjectPath)); err != nil {
		log.Debugf("ping %s %s: %v", prober.BusName, prober.ObjectPath, err)
		return false, nil
	}

	return true, nil
}

func CanSpawnOnHost() (bool, error) {
	return NewProber().CanSpawnOnHost()
}
