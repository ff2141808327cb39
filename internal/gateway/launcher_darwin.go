package gateway

import (
	"context"
	"errors"
	"os/exec"
)

// canOpenScheme Web URLはブラウザで開ける前提。カスタムスキームは対応アプリの有無を確認
func (l *SystemLauncher) canOpenScheme(ctx context.Context, scheme string) (bool, error) {
	if isWebScheme(scheme) {
		return true, nil
	}
	app, ok := l.schemeApps[scheme]
	if !ok {
		return false, nil
	}
	// open -Ra はアプリが見つからない場合に終了コード1を返す
	if _, err := l.cmd.Output(ctx, "open", "-Ra", app); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func openCommand(rawURL string) (string, []string) {
	return "open", []string{rawURL}
}
