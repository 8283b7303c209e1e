// Package browser launches the system default browser.
package browser

import (
	"os/exec"
	"runtime"
)

// Open points the default browser at url. The command is started without
// waiting; failure to open is never fatal for the caller.
func Open(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		// rundll32 is more reliable than "cmd /c start" across Windows versions.
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}
