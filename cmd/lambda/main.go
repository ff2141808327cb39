package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/k-negishi/outlook-event-linker/internal/composer"
	"github.com/k-negishi/outlook-event-linker/internal/config"
	"github.com/k-negishi/outlook-event-linker/internal/domain"
	"github.com/k-negishi/outlook-event-linker/internal/gateway"
	"github.com/k-negishi/outlook-event-linker/internal/logging"
	"github.com/k-negishi/outlook-event-linker/internal/usecase"
)

// LambdaEvent Lambda実行時のイベント構造体
type LambdaEvent struct {
	Subject     string `json:"subject"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Attendees   string `json:"attendees"`
	// Start, End RFC3339形式
	Start  string `json:"start"`
	End    string `json:"end"`
	AllDay bool   `json:"all_day"`
	// GoogleEventID 指定された場合はGoogle Calendarの予定からリンクを作る
	GoogleEventID string `json:"google_event_id"`
}

// LambdaResponse Lambda実行結果のレスポンス
type LambdaResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	NativeURL  string `json:"nativeUrl,omitempty"`
	WebURL     string `json:"webUrl,omitempty"`
}

// toDraft イベントの値を下書きに変換。CLIやフォームと同じ検証を通す
func (e LambdaEvent) toDraft(now time.Time, loc *time.Location) (domain.EventDraft, error) {
	start := now.In(loc)
	if e.Start != "" {
		t, err := time.Parse(time.RFC3339, e.Start)
		if err != nil {
			return domain.EventDraft{}, fmt.Errorf("startの形式が不正です: %w", err)
		}
		start = t.In(loc)
	}

	edits := []domain.Edit{
		domain.SetSubject(e.Subject),
		domain.SetLocation(e.Location),
		domain.SetDescription(e.Description),
		domain.SetAttendees(e.Attendees),
		domain.SetAllDay(e.AllDay),
	}
	if e.End != "" {
		t, err := time.Parse(time.RFC3339, e.End)
		if err != nil {
			return domain.EventDraft{}, fmt.Errorf("endの形式が不正です: %w", err)
		}
		edits = append(edits, domain.SetEnd(t.In(loc)))
	}

	return domain.NewEventDraft(start).ApplyAll(edits...)
}

// handler Lambda関数のメインハンドラー
func handler(ctx context.Context, event LambdaEvent) (LambdaResponse, error) {
	// 設定を読み込み
	cfg, err := config.Load()
	if err != nil {
		return LambdaResponse{StatusCode: 500, Message: "設定読み込みエラー"}, err
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	loc, err := cfg.Location()
	if err != nil {
		return LambdaResponse{StatusCode: 500, Message: "タイムゾーン設定エラー"}, err
	}

	profile, err := cfg.Profile()
	if err != nil {
		return LambdaResponse{StatusCode: 500, Message: "リンクプロファイル設定エラー"}, err
	}

	comp, err := composer.New(profile, loc)
	if err != nil {
		return LambdaResponse{StatusCode: 500, Message: "リンクプロファイル設定エラー"}, err
	}

	var draft domain.EventDraft
	if strings.TrimSpace(event.GoogleEventID) != "" {
		draft, err = loadGoogleEvent(ctx, cfg, loc, event.GoogleEventID)
		if err != nil {
			logger.Error("Google Calendarの予定取得に失敗しました", "eventID", event.GoogleEventID, "error", err)
			return LambdaResponse{StatusCode: 500, Message: "予定取得エラー"}, err
		}
	} else {
		draft, err = event.toDraft(time.Now(), loc)
		if err != nil {
			return badRequest(logger, err)
		}
	}

	notifier := gateway.NewLINENotifier(cfg.LineChannelAccessToken, cfg.LineUserID)
	uc := usecase.NewShareLinksUseCase(comp, notifier, logger)

	links, err := uc.Execute(ctx, draft)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return badRequest(logger, err)
		}
		return LambdaResponse{
			StatusCode: 500,
			Message:    "LINE通知送信エラー",
			NativeURL:  links.Native,
			WebURL:     links.Web,
		}, err
	}

	return LambdaResponse{
		StatusCode: 200,
		Message:    "リンク送信完了",
		NativeURL:  links.Native,
		WebURL:     links.Web,
	}, nil
}

// badRequest 入力エラーは再実行しても結果が変わらないためエラーを返さない
func badRequest(logger *slog.Logger, err error) (LambdaResponse, error) {
	logger.Warn("入力内容が不正です", "error", err)
	return LambdaResponse{StatusCode: 400, Message: err.Error()}, nil
}

func loadGoogleEvent(ctx context.Context, cfg *config.Config, loc *time.Location, eventID string) (domain.EventDraft, error) {
	if cfg.GoogleCredentials == "" {
		return domain.EventDraft{}, errors.New("Google認証情報が設定されていません")
	}
	repo, err := gateway.NewGoogleCalendarRepository(ctx, []byte(cfg.GoogleCredentials), cfg.CalendarID, loc)
	if err != nil {
		return domain.EventDraft{}, err
	}
	return repo.GetEvent(ctx, eventID)
}

func main() {
	lambda.Start(handler)
}
