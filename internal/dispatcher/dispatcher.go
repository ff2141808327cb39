package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoHandlerAvailable どの候補URLも開けるアプリがない
var ErrNoHandlerAvailable = errors.New("URLを開けるアプリケーションがありません")

// ActivationError OSへのURL受け渡しに失敗した
type ActivationError struct {
	URL string
	Err error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("URLを開けませんでした (%s): %v", e.URL, e.Err)
}

func (e *ActivationError) Unwrap() error {
	return e.Err
}

// Prober URLを開けるかどうかを問い合わせるポート
type Prober interface {
	CanOpen(ctx context.Context, rawURL string) (bool, error)
}

// Opener URLをOSに渡して開くポート。アプリ側の結果は待たない
type Opener interface {
	Open(ctx context.Context, rawURL string) error
}

// Dispatcher 候補URLを順に確認し、最初に開けるものを開く
type Dispatcher struct {
	prober Prober
	opener Opener
	logger *slog.Logger
}

// New Dispatcherを作成
func New(prober Prober, opener Opener, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		prober: prober,
		opener: opener,
		logger: logger,
	}
}

// Activate 候補を順に確認して開く。確認せずに開くことはしない
func (d *Dispatcher) Activate(ctx context.Context, candidates []string) (string, error) {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}

		ok, err := d.prober.CanOpen(ctx, candidate)
		if err != nil {
			d.logger.Warn("URLの確認に失敗したため次の候補を試します", "url", candidate, "error", err)
			continue
		}
		if !ok {
			d.logger.Info("URLを開けるアプリがありません", "url", candidate)
			continue
		}

		d.logger.Info("URLを開きます", "url", candidate)
		if err := d.opener.Open(ctx, candidate); err != nil {
			return "", &ActivationError{URL: candidate, Err: err}
		}
		return candidate, nil
	}
	return "", ErrNoHandlerAvailable
}
