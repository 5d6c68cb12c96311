//go:build !linux

package main

import (
	"fmt"
	"os"
)

func cmdServe() {
	fmt.Fprintln(os.Stderr, "menukit-export serve requires a D-Bus session bus and is only supported on Linux.")
	os.Exit(1)
}
