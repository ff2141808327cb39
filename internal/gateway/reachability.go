package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// prober ReachabilityProberが委譲する確認処理
type prober interface {
	CanOpen(ctx context.Context, rawURL string) (bool, error)
}

// ReachabilityProber Web URLについては実際に到達できるかも確認する
type ReachabilityProber struct {
	next       prober
	httpClient *http.Client
	logger     *slog.Logger
}

// NewReachabilityProber 既存のProberをHTTP到達確認で包む
func NewReachabilityProber(next prober, logger *slog.Logger) *ReachabilityProber {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReachabilityProber{
		next: next,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// CanOpen 委譲先で開けると判定されたWeb URLにHEADリクエストを送る
func (p *ReachabilityProber) CanOpen(ctx context.Context, rawURL string) (bool, error) {
	ok, err := p.next.CanOpen(ctx, rawURL)
	if err != nil || !ok {
		return ok, err
	}

	scheme, err := urlScheme(rawURL)
	if err != nil {
		return false, err
	}
	if !isWebScheme(scheme) {
		return true, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("Web版への接続に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	p.logger.Debug("Web版の到達確認", "url", rawURL, "status", resp.StatusCode)
	// ログイン画面へのリダイレクトや405も到達できたとみなす
	return resp.StatusCode < http.StatusInternalServerError, nil
}
