package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/k-negishi/outlook-event-linker/internal/domain"
)

const shareTitle = "Outlook予定リンク"

// ShareLinksUseCase 生成したリンクを通知先へ送るユースケース
type ShareLinksUseCase struct {
	composer LinkComposer
	notifier Notifier
	logger   *slog.Logger
}

// NewShareLinksUseCase ユースケースを生成
func NewShareLinksUseCase(composer LinkComposer, notifier Notifier, logger *slog.Logger) *ShareLinksUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShareLinksUseCase{
		composer: composer,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute リンクを生成して送信。検証エラーの場合は何も送らない
func (uc *ShareLinksUseCase) Execute(ctx context.Context, draft domain.EventDraft) (domain.LinkPair, error) {
	links, err := uc.composer.BuildLinks(draft)
	if err != nil {
		return domain.LinkPair{}, err
	}

	if err := uc.notifier.Notify(ctx, shareTitle, buildShareMessage(draft, links)); err != nil {
		uc.logger.Error("リンクの送信に失敗しました", "error", err)
		return links, fmt.Errorf("リンクの送信に失敗しました: %w", err)
	}

	uc.logger.Info("リンクを送信しました", "subject", draft.TrimmedSubject())
	return links, nil
}

func buildShareMessage(draft domain.EventDraft, links domain.LinkPair) string {
	var b strings.Builder
	b.WriteString(draft.TrimmedSubject())
	b.WriteString("\n")
	if draft.IsAllDay {
		b.WriteString(fmt.Sprintf("%s (終日)\n", draft.Start.Format("2006/01/02")))
	} else {
		b.WriteString(fmt.Sprintf("%s〜%s\n", draft.Start.Format("2006/01/02 15:04"), draft.End.Format("15:04")))
	}
	if loc := strings.TrimSpace(draft.Location); loc != "" {
		b.WriteString(fmt.Sprintf("📍 %s\n", loc))
	}
	b.WriteString("\nOutlookアプリ:\n")
	b.WriteString(links.Native)
	b.WriteString("\n\nWeb版:\n")
	b.WriteString(links.Web)
	return b.String()
}
