// Package logging はアプリ全体で使う slog のロガーを組み立てる。
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New ログレベル文字列（DEBUG/INFO/WARN/ERROR、大文字小文字は問わない）からロガーを作成
func New(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel 不明な値はINFOとして扱う
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
