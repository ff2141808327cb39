package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"strings"
)

// commander 外部コマンド実行の抽象。テストで差し替える
type commander interface {
	// Output コマンドを実行して標準出力を返す
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Start コマンドを起動し、終了を待たない
	Start(name string, args ...string) error
	// LookPath コマンドがPATH上にあるか
	LookPath(name string) (string, error)
}

type execCommander struct{}

func (execCommander) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (execCommander) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (execCommander) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// DefaultSchemeApps macOSでカスタムスキームの確認に使うアプリ名
var DefaultSchemeApps = map[string]string{
	"ms-outlook": "Microsoft Outlook",
}

// SystemLauncher OSのURL起動機能を使ったProber/Openerの実装
type SystemLauncher struct {
	cmd        commander
	schemeApps map[string]string
	logger     *slog.Logger
}

// NewSystemLauncher ランチャーを作成
func NewSystemLauncher(logger *slog.Logger) *SystemLauncher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SystemLauncher{
		cmd:        execCommander{},
		schemeApps: DefaultSchemeApps,
		logger:     logger,
	}
}

// CanOpen URLのスキームを処理できるアプリが登録されているか確認
func (l *SystemLauncher) CanOpen(ctx context.Context, rawURL string) (bool, error) {
	scheme, err := urlScheme(rawURL)
	if err != nil {
		return false, err
	}
	ok, err := l.canOpenScheme(ctx, scheme)
	if err != nil {
		return false, fmt.Errorf("スキーム %s の確認に失敗しました: %w", scheme, err)
	}
	l.logger.Debug("URLスキームを確認しました", "scheme", scheme, "canOpen", ok)
	return ok, nil
}

// Open URLをOSに渡す。アプリの起動完了は待たない
func (l *SystemLauncher) Open(_ context.Context, rawURL string) error {
	if _, err := urlScheme(rawURL); err != nil {
		return err
	}
	name, args := openCommand(rawURL)
	if err := l.cmd.Start(name, args...); err != nil {
		return fmt.Errorf("%s の起動に失敗しました: %w", name, err)
	}
	return nil
}

func urlScheme(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("URLの解析に失敗しました: %w", err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("URLにスキームがありません: %s", rawURL)
	}
	return strings.ToLower(u.Scheme), nil
}

func isWebScheme(scheme string) bool {
	return scheme == "http" || scheme == "https"
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
