package steps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"provision/internal/plugins/internalexec"
)

// run executes name with args, streaming its output the way the rest of the
// codebase's subprocess steps do, and returns trimmed stdout on success. A
// nonzero exit is reported with whichever of stdout/stderr is non-empty.
func run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	res, err := internalexec.RunStreaming(cmd)
	if err != nil {
		primary := internalexec.PrimaryOutput(res)
		if primary == "" {
			primary = err.Error()
		}
		return "", fmt.Errorf("%s: %s", name, primary)
	}

	return strings.TrimSpace(res.Stdout), nil
}
