package review

import (
	"errors"
	"fmt"
	"os/exec"
)

// SideBySideDiff runs the external diff tool over two files and returns
// its combined output. diff exits 1 when the files differ; that is a
// result, not a failure.
func SideBySideDiff(pathA, pathB string) (string, error) {
	cmd := exec.Command("diff", "--side-by-side", pathA, pathB)
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return string(output), nil
		}
		return "", fmt.Errorf("failed to run diff: %w", err)
	}
	return string(output), nil
}
