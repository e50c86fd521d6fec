//go:build !windows
// +build !windows

package cmd

import (
	"os"

	"golang.org/x/sys/unix"
)

var stopSignals = []os.Signal{os.Interrupt, unix.SIGQUIT, unix.SIGTERM}
