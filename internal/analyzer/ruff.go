// # internal/analyzer/ruff.go
package analyzer

import (
	"context"
	"log/slog"
	"os/exec"
)

// RuffFix runs `ruff check --fix` on a path before analysis. A missing or
// failing ruff binary only produces a warning; analysis proceeds on the
// files as they are.
func RuffFix(ctx context.Context, path string) bool {
	cmd := exec.CommandContext(ctx, "ruff", "check", path, "--fix")
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// Non-zero exit just means ruff found things it could not fix.
			return true
		}
		slog.Warn("ruff auto-fix unavailable", "path", path, "error", err)
		return false
	}
	return true
}
