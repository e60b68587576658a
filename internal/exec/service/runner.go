// Package service implements the command execution capability used by chain
// resolution: shell execution with context propagation, static content
// pass-through, and the command directory lookups behind both.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	execDomain "github.com/allisson/refvault/internal/exec/domain"
	apperrors "github.com/allisson/refvault/internal/errors"
)

// Resolver resolves the text fields of a command before it runs. Chain
// resolution passes the resolution engine itself here, which is what makes
// command chaining recursive.
type Resolver func(ctx context.Context, text string) (string, error)

// Runner executes a stored command by its canonical id.
type Runner interface {
	// Execute runs the command and returns its result. Returns
	// errors.ErrNotFound when no command carries the id; the caller leaves
	// the reference unresolved in that case.
	Execute(ctx context.Context, commandID string, resolve Resolver) (execDomain.Result, error)
}

// Directory looks up stored commands.
type Directory interface {
	// Get retrieves a command by its canonical id.
	Get(ctx context.Context, commandID string) (*execDomain.Command, error)

	// ResolveLabel returns the canonical id of the command carrying the label.
	ResolveLabel(ctx context.Context, label string) (string, error)
}

// shellRunner implements Runner on top of a Directory, running shell
// commands through /bin/sh and passing static content through verbatim.
type shellRunner struct {
	dir   Directory
	shell string
}

// NewShellRunner creates a Runner backed by the given directory.
func NewShellRunner(dir Directory) Runner {
	return &shellRunner{dir: dir, shell: "/bin/sh"}
}

// Execute runs the command identified by commandID and returns its result.
func (s *shellRunner) Execute(ctx context.Context, commandID string, resolve Resolver) (execDomain.Result, error) {
	command, err := s.dir.Get(ctx, commandID)
	if err != nil {
		return execDomain.Result{}, err
	}

	switch command.Kind {
	case execDomain.StaticCommand:
		return makeResult(command.Body), nil
	case execDomain.ShellCommand:
		body := command.Body
		if resolve != nil {
			body, err = resolve(ctx, body)
			if err != nil {
				return execDomain.Result{}, err
			}
		}
		return s.runShell(ctx, body)
	default:
		return execDomain.Result{}, apperrors.New("unknown command kind: " + string(command.Kind))
	}
}

func (s *shellRunner) runShell(ctx context.Context, script string) (execDomain.Result, error) {
	cmd := exec.CommandContext(ctx, s.shell, "-c", script)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return execDomain.Result{}, apperrors.Wrap(err, "command execution failed")
	}

	return makeResult(strings.TrimRight(stdout.String(), "\n")), nil
}

// makeResult wraps raw output, detecting JSON-shaped text for path extraction.
func makeResult(text string) execDomain.Result {
	result := execDomain.Result{Text: text}

	trimmed := strings.TrimSpace(text)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		result.Structured = trimmed
		result.IsStructured = true
	}

	return result
}
