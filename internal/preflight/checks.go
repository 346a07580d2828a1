package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"tagwise/internal/prompt"
	"tagwise/internal/services"
	"tagwise/internal/services/llm"
)

const (
	llmCheckTimeout = 30 * time.Second
	llmCheckPrompt  = "Reply with the single word: ok"
)

// Requirement defines an external binary tagwise can use.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// CheckLLM sends a one-line prompt through gen with a 30-second timeout and a
// single attempt.
func CheckLLM(ctx context.Context, name string, gen llm.TextGenerator) Result {
	checkCtx, cancel := context.WithTimeout(ctx, llmCheckTimeout)
	defer cancel()

	raw, err := gen.Generate(checkCtx, llmCheckPrompt)
	if err != nil {
		return Result{Name: name, Detail: summarizeLLMError(err)}
	}
	if reply := prompt.Parse(raw); reply.Description == "" {
		return Result{Name: name, Detail: "API reachable but returned an empty reply"}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable and
// writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckBinary reports whether req.Command resolves on PATH.
func CheckBinary(req Requirement) Result {
	result := Result{Name: req.Name, Optional: req.Optional}
	cmd := strings.TrimSpace(req.Command)
	if cmd == "" {
		result.Detail = "command not configured"
		return result
	}
	resolved, err := exec.LookPath(cmd)
	if err != nil {
		result.Detail = fmt.Sprintf("binary %q not found", cmd)
		if req.Description != "" {
			result.Detail += "; " + strings.ToLower(req.Description[:1]) + req.Description[1:]
		}
		return result
	}
	result.Passed = true
	result.Detail = resolved
	return result
}

func summarizeLLMError(err error) string {
	var statusErr *llm.StatusError
	switch {
	case errors.Is(err, llm.ErrMissingEndpoint):
		return "custom provider needs api.endpoint"
	case errors.As(err, &statusErr) && (statusErr.StatusCode == 401 || statusErr.StatusCode == 403):
		return fmt.Sprintf("auth failed (http %d, check api.api_key)", statusErr.StatusCode)
	case errors.As(err, &statusErr):
		return fmt.Sprintf("provider returned http %d", statusErr.StatusCode)
	case errors.Is(err, services.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "health check timed out (LLM API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (LLM API unreachable)"
	}
	return err.Error()
}
