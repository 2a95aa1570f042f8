package navigate

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Open opens rawURL in the default browser without waiting for it.
//
// ctx only gates the start. The opener keeps running after ctx is cancelled
// because it usually hands off to the browser after Open has returned.
func Open(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("no browser opener for %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", rawURL, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
