//go:build !windows

package app

import (
	"os"
	"syscall"
)

// contSignals are delivered when the shell resumes a suspended process.
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}
