package gateway

import (
	"context"
	"errors"
	"os/exec"
)

// canOpenScheme レジストリにURLプロトコルとして登録されているか確認
func (l *SystemLauncher) canOpenScheme(ctx context.Context, scheme string) (bool, error) {
	_, err := l.cmd.Output(ctx, "reg", "query", `HKEY_CLASSES_ROOT\`+scheme, "/v", "URL Protocol")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func openCommand(rawURL string) (string, []string) {
	return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
}
