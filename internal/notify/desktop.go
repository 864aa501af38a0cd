package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Desktop shows OS-level notifications.
type Desktop interface {
	RequestPermission(ctx context.Context) (Permission, error)
	Notify(ctx context.Context, title, body string) error
}

// NopDesktop denies permission and shows nothing.
type NopDesktop struct{}

func (NopDesktop) RequestPermission(context.Context) (Permission, error) {
	return PermissionDenied, nil
}

func (NopDesktop) Notify(context.Context, string, string) error { return nil }

// CommandDesktop notifies through notify-send on Linux and osascript on macOS.
// Permission is granted when the tool is installed.
type CommandDesktop struct {
	goos string
	path string
}

func NewCommandDesktop() *CommandDesktop {
	desktop := &CommandDesktop{goos: runtime.GOOS}
	tool := ""
	switch desktop.goos {
	case "linux", "freebsd", "openbsd":
		tool = "notify-send"
	case "darwin":
		tool = "osascript"
	}
	if tool != "" {
		if path, err := exec.LookPath(tool); err == nil {
			desktop.path = path
		}
	}
	return desktop
}

func (d *CommandDesktop) RequestPermission(context.Context) (Permission, error) {
	if d.path == "" {
		return PermissionDenied, fmt.Errorf("desktop notifications: %w", ErrUnsupported)
	}
	return PermissionGranted, nil
}

func (d *CommandDesktop) Notify(ctx context.Context, title, body string) error {
	if d.path == "" {
		return fmt.Errorf("desktop notifications: %w", ErrUnsupported)
	}

	var cmd *exec.Cmd
	if d.goos == "darwin" {
		script := fmt.Sprintf("display notification %s with title %s", appleScriptString(body), appleScriptString(title))
		cmd = exec.CommandContext(ctx, d.path, "-e", script)
	} else {
		cmd = exec.CommandContext(ctx, d.path, "--app-name=PausePad", "--icon=appointment-soon", title, body)
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", d.path, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func appleScriptString(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
