//go:build windows

package app

import "os"

// contSignals is empty on Windows, which never stops the process.
func contSignals() []os.Signal {
	return nil
}
