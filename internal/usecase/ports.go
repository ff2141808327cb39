package usecase

import (
	"context"

	"github.com/k-negishi/outlook-event-linker/internal/domain"
)

// LinkComposer 下書きからリンクを生成するポート
type LinkComposer interface {
	BuildLinks(draft domain.EventDraft) (domain.LinkPair, error)
}

// Dispatcher 候補URLを確認して開くポート
type Dispatcher interface {
	Activate(ctx context.Context, candidates []string) (string, error)
}

// Notifier ユーザーへメッセージを通知するポート
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// EventSource 既存の予定を下書きとして取得するポート
type EventSource interface {
	GetEvent(ctx context.Context, eventID string) (domain.EventDraft, error)
}
