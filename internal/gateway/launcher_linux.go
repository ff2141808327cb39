package gateway

import (
	"context"
	"strings"
)

// canOpenScheme xdg-mimeでスキームの既定ハンドラーを確認
func (l *SystemLauncher) canOpenScheme(ctx context.Context, scheme string) (bool, error) {
	if _, err := l.cmd.LookPath("xdg-open"); err != nil {
		return false, nil
	}
	out, err := l.cmd.Output(ctx, "xdg-mime", "query", "default", "x-scheme-handler/"+scheme)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) != "", nil
}

func openCommand(rawURL string) (string, []string) {
	return "xdg-open", []string{rawURL}
}
