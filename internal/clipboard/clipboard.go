// Package clipboard copies text to the system clipboard via helper tools.
package clipboard

import (
	"os/exec"
	"runtime"
	"strings"
)

// candidates returns the helper commands for the current platform, in
// preference order.
func candidates() [][]string {
	switch runtime.GOOS {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{{"cmd", "/c", "clip"}}
	default:
		return [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}
}

// Write copies text to the system clipboard using the first available
// helper.
func Write(text string) error {
	var firstErr error
	for _, argv := range candidates() {
		if _, err := exec.LookPath(argv[0]); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = strings.NewReader(text)
		return cmd.Run()
	}
	if firstErr == nil {
		firstErr = exec.ErrNotFound
	}
	return firstErr
}

// Available reports whether a clipboard helper is installed.
func Available() bool {
	for _, argv := range candidates() {
		if _, err := exec.LookPath(argv[0]); err == nil {
			return true
		}
	}
	return false
}
