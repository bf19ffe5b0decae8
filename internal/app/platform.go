package app

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

func detectClipboard() ([]string, bool) {
	return detectClipboardInternal(runtime.GOOS, os.Getenv, exec.LookPath)
}

// detectClipboardInternal picks a command that copies its stdin to the
// clipboard. Wayland and X11 tools are preferred according to the session
// type.
func detectClipboardInternal(goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	try := func(name string, args ...string) ([]string, bool) {
		if path, err := lookPath(name); err == nil && path != "" {
			return append([]string{path}, args...), true
		}
		return nil, false
	}

	switch strings.ToLower(goos) {
	case "windows":
		for _, name := range []string{"clip.exe", "clip"} {
			if cmd, ok := try(name); ok {
				return cmd, true
			}
		}
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			if cmd, ok := try(ps, "-NoLogo", "-NoProfile", "-Command", "$input | Set-Clipboard"); ok {
				return cmd, true
			}
		}
		return nil, false
	case "darwin":
		return try("pbcopy")
	}

	if getenv("WAYLAND_DISPLAY") != "" {
		if cmd, ok := try("wl-copy"); ok {
			return cmd, true
		}
	}
	if cmd, ok := try("xclip", "-selection", "clipboard"); ok {
		return cmd, true
	}
	if cmd, ok := try("xsel", "--clipboard", "--input"); ok {
		return cmd, true
	}
	return try("wl-copy")
}
