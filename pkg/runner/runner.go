// Package runner turns a profile's scripts and package list into executable
// shell units and drives their idempotent install/uninstall execution keyed
// off the profile's self-reported installed-status check.
package runner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
)

// ErrExecutionFailure covers script spawn failures, non-zero exits, and
// script materialization IO errors. No structured exit-code taxonomy is
// exposed; with `set -e` a partially-run script stops at the failing line
// and there is no rollback.
var ErrExecutionFailure = errors.New("profile script execution failed")

const scriptHeader = "#! /bin/bash\nset -e\n"

// Outcome reports what an install or uninstall call actually did.
type Outcome int

const (
	// OutcomeApplied means the combined script ran to completion.
	OutcomeApplied Outcome = iota
	// OutcomeAlreadySatisfied means the status check made the call a no-op:
	// already installed for Install, not installed for Uninstall.
	OutcomeAlreadySatisfied
	// OutcomeNothingToRun means the profile carries neither packages nor a
	// script for the requested operation.
	OutcomeNothingToRun
)

// Runner executes profile scripts with the correct privilege. Scripts are
// materialized into uniquely-named world-executable files under ScriptDir,
// so concurrent evaluations never share a script path.
type Runner struct {
	ScriptDir      string
	Shell          string
	InstallCommand string
	RemoveCommand  string

	// Escalator wraps privileged invocations (package installs, hardware
	// helpers) when the process is not running as root. Empty disables
	// escalation entirely.
	Escalator string

	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Runner with platform defaults. Callers running as root get
// no escalation wrapper.
func New(scriptDir, installCmd, removeCmd string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	escalator := "pkexec"
	if os.Geteuid() == 0 {
		escalator = ""
	}
	return &Runner{
		ScriptDir:      scriptDir,
		Shell:          "/bin/bash",
		InstallCommand: installCmd,
		RemoveCommand:  removeCmd,
		Escalator:      escalator,
		Logger:         logger,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	}
}

// Status runs the profile's check script and reports true iff it exits 0.
// The script's own output is discarded; only the exit status matters.
func (r *Runner) Status(p *catalog.Profile) bool {
	path, cleanup, err := r.materialize("check", scriptHeader+p.CheckScript+" > /dev/null 2>&1")
	if err != nil {
		r.Logger.Warn("could not materialize check script", "profile", p.Codename, "error", err)
		return false
	}
	defer cleanup()

	cmd := exec.Command(r.Shell, path)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run() == nil
}

// Install applies the profile: package installation first, then the install
// script, in one `set -e` shell so a failing step aborts the rest. It is a
// no-op when the profile already reports installed.
func (r *Runner) Install(p *catalog.Profile) (Outcome, error) {
	if r.Status(p) {
		r.Logger.Info("profile already installed", "profile", p.Codename)
		return OutcomeAlreadySatisfied, nil
	}

	var lines []string
	if len(p.Packages) > 0 {
		lines = append(lines, r.InstallCommand+" "+strings.Join(p.Packages, " "))
	}
	if p.InstallScript != nil && *p.InstallScript != "" {
		lines = append(lines, *p.InstallScript)
	}
	if len(lines) == 0 {
		return OutcomeNothingToRun, nil
	}
	if err := r.runPrivileged(p.Codename, "install", lines); err != nil {
		return OutcomeApplied, err
	}
	return OutcomeApplied, nil
}

// Uninstall is symmetric with Install: a no-op when the profile reports not
// installed, otherwise package removal followed by the remove script.
func (r *Runner) Uninstall(p *catalog.Profile) (Outcome, error) {
	if !r.Status(p) {
		r.Logger.Info("profile not installed", "profile", p.Codename)
		return OutcomeAlreadySatisfied, nil
	}

	var lines []string
	if len(p.Packages) > 0 {
		lines = append(lines, r.RemoveCommand+" "+strings.Join(p.Packages, " "))
	}
	if p.RemoveScript != nil && *p.RemoveScript != "" {
		lines = append(lines, *p.RemoveScript)
	}
	if len(lines) == 0 {
		return OutcomeNothingToRun, nil
	}
	if err := r.runPrivileged(p.Codename, "remove", lines); err != nil {
		return OutcomeApplied, err
	}
	return OutcomeApplied, nil
}

// Run executes an external command with privilege escalation. It satisfies
// hwd.CommandRunner for device actions.
func (r *Runner) Run(name string, args ...string) error {
	argv := append([]string{name}, args...)
	if r.Escalator != "" {
		argv = append([]string{r.Escalator}, argv...)
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrExecutionFailure, name, err)
	}
	return nil
}

func (r *Runner) runPrivileged(codename, kind string, lines []string) error {
	path, cleanup, err := r.materialize(kind, scriptHeader+strings.Join(lines, "\n")+"\n")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecutionFailure, err)
	}
	defer cleanup()

	r.Logger.Info("running profile script", "profile", codename, "kind", kind)
	if err := r.Run(r.Shell, path); err != nil {
		return fmt.Errorf("%s script for %q: %w", kind, codename, err)
	}
	return nil
}

// materialize writes a script body to a fresh uniquely-named file, mode
// 0777 so the escalated shell can execute it regardless of the invoking
// user.
func (r *Runner) materialize(kind, body string) (string, func(), error) {
	if err := os.MkdirAll(r.ScriptDir, 0o755); err != nil {
		return "", nil, err
	}
	path := filepath.Join(r.ScriptDir, fmt.Sprintf("%s-%s.sh", kind, uuid.NewString()))
	if err := os.WriteFile(path, []byte(body), 0o777); err != nil {
		return "", nil, err
	}
	// WriteFile permissions are narrowed by the umask; the helper shell
	// needs the file world-executable.
	if err := os.Chmod(path, 0o777); err != nil {
		os.Remove(path)
		return "", nil, err
	}
	return path, func() { os.Remove(path) }, nil
}
