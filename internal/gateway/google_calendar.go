package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/k-negishi/outlook-event-linker/internal/domain"
)

// untitledSubject 件名が空の予定に付ける件名
const untitledSubject = "（無題）"

// EventsProvider Google Calendar APIから予定を1件取得する
type EventsProvider interface {
	GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error)
}

type serviceEventsProvider struct {
	service *calendar.Service
}

func (p *serviceEventsProvider) GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error) {
	return p.service.Events.Get(calendarID, eventID).Context(ctx).Do()
}

// GoogleCalendarRepository Google Calendarの予定を下書きとして読み込むEventSourceの実装
type GoogleCalendarRepository struct {
	provider   EventsProvider
	calendarID string
	timezone   *time.Location
}

// NewGoogleCalendarRepository Google Calendarリポジトリを作成
func NewGoogleCalendarRepository(ctx context.Context, credentialsJSON []byte, calendarID string, timezone *time.Location) (*GoogleCalendarRepository, error) {
	// サービスアカウント認証でCalendar APIクライアントを作成
	creds, err := google.CredentialsFromJSON(
		ctx,
		credentialsJSON,
		calendar.CalendarReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("google認証情報の読み込みに失敗しました: %w", err)
	}

	service, err := calendar.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("google Calendar APIサービスの作成に失敗しました: %w", err)
	}

	return NewGoogleCalendarRepositoryWithService(service, calendarID, timezone), nil
}

// NewGoogleCalendarRepositoryWithService 作成済みのサービスを使う
func NewGoogleCalendarRepositoryWithService(service *calendar.Service, calendarID string, timezone *time.Location) *GoogleCalendarRepository {
	return NewGoogleCalendarRepositoryWithProvider(&serviceEventsProvider{service: service}, calendarID, timezone)
}

// NewGoogleCalendarRepositoryWithProvider 取得処理を差し替えて作成
func NewGoogleCalendarRepositoryWithProvider(provider EventsProvider, calendarID string, timezone *time.Location) *GoogleCalendarRepository {
	if timezone == nil {
		timezone = time.Local
	}
	return &GoogleCalendarRepository{
		provider:   provider,
		calendarID: calendarID,
		timezone:   timezone,
	}
}

// GetEvent 指定IDの予定を取得して下書きに変換
func (r *GoogleCalendarRepository) GetEvent(ctx context.Context, eventID string) (domain.EventDraft, error) {
	if strings.TrimSpace(eventID) == "" {
		return domain.EventDraft{}, fmt.Errorf("予定IDが指定されていません")
	}

	event, err := r.provider.GetEvent(ctx, r.calendarID, eventID)
	if err != nil {
		return domain.EventDraft{}, fmt.Errorf("カレンダーイベントの取得に失敗しました: %w", err)
	}

	return r.convertToDraft(event)
}

// convertToDraft Google Calendar APIのイベントを下書きに変換
func (r *GoogleCalendarRepository) convertToDraft(event *calendar.Event) (domain.EventDraft, error) {
	draft := domain.EventDraft{
		Subject:     event.Summary,
		Location:    event.Location,
		Description: event.Description,
	}

	// タイトルが空の場合は「（無題）」に設定
	if strings.TrimSpace(draft.Subject) == "" {
		draft.Subject = untitledSubject
	}

	var emails []string
	for _, a := range event.Attendees {
		if a == nil || a.Email == "" || a.Self || a.Resource {
			continue
		}
		emails = append(emails, a.Email)
	}
	draft.Attendees = strings.Join(emails, ";")

	if event.Start == nil || event.End == nil {
		return domain.EventDraft{}, fmt.Errorf("開始時刻が設定されていません")
	}

	// 開始時刻の処理
	switch {
	case event.Start.DateTime != "":
		startTime, err := time.Parse(time.RFC3339, event.Start.DateTime)
		if err != nil {
			return domain.EventDraft{}, fmt.Errorf("開始時刻の解析に失敗しました: %w", err)
		}
		draft.Start = startTime.In(r.timezone)
	case event.Start.Date != "":
		startTime, err := time.ParseInLocation("2006-01-02", event.Start.Date, r.timezone)
		if err != nil {
			return domain.EventDraft{}, fmt.Errorf("開始日の解析に失敗しました: %w", err)
		}
		draft.Start = startTime
		draft.IsAllDay = true
	default:
		return domain.EventDraft{}, fmt.Errorf("開始時刻が設定されていません")
	}

	// 終了時刻の処理
	switch {
	case event.End.DateTime != "":
		endTime, err := time.Parse(time.RFC3339, event.End.DateTime)
		if err != nil {
			return domain.EventDraft{}, fmt.Errorf("終了時刻の解析に失敗しました: %w", err)
		}
		draft.End = endTime.In(r.timezone)
	case event.End.Date != "":
		endTime, err := time.ParseInLocation("2006-01-02", event.End.Date, r.timezone)
		if err != nil {
			return domain.EventDraft{}, fmt.Errorf("終了日の解析に失敗しました: %w", err)
		}
		// Google の終日予定は終了日が翌日（排他）なので最終日に戻す
		if endTime.After(draft.Start) {
			endTime = endTime.AddDate(0, 0, -1)
		}
		draft.End = endTime
	default:
		return domain.EventDraft{}, fmt.Errorf("終了時刻が設定されていません")
	}

	return draft, nil
}
