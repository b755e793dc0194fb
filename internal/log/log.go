/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package log

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
)

// No timestamps and no fancy formatting: output either goes to a terminal, or to the journal
// (when we're started from a desktop file), which adds its own metadata. In the latter case
// messages are sent as native journal entries so the priority survives.

var (
	verbose   bool
	toJournal = stderrIsJournal()
)

func stderrIsJournal() bool {
	if !journal.Enabled() {
		return false
	}

	ok, err := journal.StderrIsJournalStream()
	return err == nil && ok
}

func SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&verbose, "v", verbose, "Be verbose")
}

func Verbose() bool {
	return verbose
}

func SetVerbose(newVerbose bool) {
	verbose = newVerbose
}

func Info(args ...interface{}) {
	fmt.Println(args...)
}

func Infof(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

func Debug(args ...interface{}) {
	if verbose {
		emit(journal.PriDebug, strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
	}
}

func Debugf(format string, args ...interface{}) {
	if verbose {
		emit(journal.PriDebug, fmt.Sprintf(format, args...))
	}
}

func Alert(args ...interface{}) {
	emit(journal.PriErr, strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

func Alertf(format string, args ...interface{}) {
	emit(journal.PriErr, fmt.Sprintf(format, args...))
}

func Fatal(args ...interface{}) {
	Alert(args...)
	os.Exit(1)
}

func Fatalf(format string, args ...interface{}) {
	Alertf(format, args...)
	os.Exit(1)
}

func emit(priority journal.Priority, message string) {
	if toJournal {
		if err := journal.Send(message, priority, nil); err == nil {
			return
		}
	}

	fmt.Fprintln(os.Stderr, message)
}
