//go:build !linux && !darwin && !windows

package gateway

import "context"

func (l *SystemLauncher) canOpenScheme(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func openCommand(rawURL string) (string, []string) {
	return "xdg-open", []string{rawURL}
}
