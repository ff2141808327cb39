package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/k-negishi/outlook-event-linker/internal/dispatcher"
	"github.com/k-negishi/outlook-event-linker/internal/domain"
)

const (
	errorTitle = "エラー"

	// msgOpenFailure 起動先が無い場合も起動に失敗した場合も同じ文言で通知する
	msgOpenFailure = "Outlookを開けません。Outlookがインストールされているか、Web版にアクセスできるか確認してください"
)

// ComposeEventUseCase 予定をOutlookで開くユースケース
type ComposeEventUseCase struct {
	composer   LinkComposer
	dispatcher Dispatcher
	notifier   Notifier
	logger     *slog.Logger
}

// NewComposeEventUseCase ユースケースを生成
func NewComposeEventUseCase(composer LinkComposer, dispatcher Dispatcher, notifier Notifier, logger *slog.Logger) *ComposeEventUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ComposeEventUseCase{
		composer:   composer,
		dispatcher: dispatcher,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute 下書きを検証し、ネイティブアプリ→Web版の順にOutlookを開く。
// 失敗した場合はユーザーに通知してエラーを返す（再試行はしない）
func (uc *ComposeEventUseCase) Execute(ctx context.Context, draft domain.EventDraft) (string, error) {
	links, err := uc.composer.BuildLinks(draft)
	if err != nil {
		uc.notify(ctx, userMessage(err))
		return "", err
	}

	uc.logger.Debug("Outlook用リンクを生成しました", "native", links.Native, "web", links.Web)

	activated, err := uc.dispatcher.Activate(ctx, links.Candidates())
	if err != nil {
		var actErr *dispatcher.ActivationError
		if errors.As(err, &actErr) {
			uc.logger.Error("Outlookの起動に失敗しました", "url", actErr.URL, "error", actErr.Err)
		} else {
			uc.logger.Warn("Outlookを開けるアプリが見つかりません", "error", err)
		}
		uc.notify(ctx, userMessage(err))
		return "", err
	}

	uc.logger.Info("Outlookを開きました", "url", activated, "subject", draft.TrimmedSubject())
	return activated, nil
}

func (uc *ComposeEventUseCase) notify(ctx context.Context, message string) {
	if err := uc.notifier.Notify(ctx, errorTitle, message); err != nil {
		uc.logger.Error("通知の送信に失敗しました", "error", err)
	}
}

// userMessage エラーをユーザー向けの文言に変換
func userMessage(err error) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	return msgOpenFailure
}
