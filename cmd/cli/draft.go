package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/k-negishi/outlook-event-linker/internal/domain"
)

type inputKind int

const (
	kindDateTime inputKind = iota
	kindDate
	kindClock
)

// timeInput コマンドラインで指定された日時。日付のみ・時刻のみの指定も受け付ける
type timeInput struct {
	t    time.Time
	kind inputKind
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func parseTimeInput(s string, loc *time.Location) (timeInput, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return timeInput{t: t.In(loc), kind: kindDateTime}, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return timeInput{t: t, kind: kindDateTime}, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return timeInput{t: t, kind: kindDate}, nil
	}
	if t, err := time.ParseInLocation("15:04", s, loc); err == nil {
		return timeInput{t: t, kind: kindClock}, nil
	}
	return timeInput{}, fmt.Errorf("日時の形式が不正です: %q (例: 2024-01-15T10:00, 2024-01-15, 10:00)", s)
}

func (in timeInput) startEdit() domain.Edit {
	switch in.kind {
	case kindDate:
		return domain.SetStartDate(in.t)
	case kindClock:
		return domain.SetStartTime(in.t)
	default:
		return domain.SetStart(in.t)
	}
}

func (in timeInput) endEdit() domain.Edit {
	switch in.kind {
	case kindDate:
		return domain.SetEndDate(in.t)
	case kindClock:
		return domain.SetEndTime(in.t)
	default:
		return domain.SetEnd(in.t)
	}
}

// draftInput 下書きの元になるフラグの値
type draftInput struct {
	Subject     string
	Location    string
	Description string
	Attendees   []string
	Start       string
	End         string
	AllDay      bool
}

// buildDraft フォーム入力と同じ検証ルールで下書きを組み立てる。
// 開始のみ指定された場合は終了を開始の1時間後にする
func buildDraft(in draftInput, now time.Time, loc *time.Location) (domain.EventDraft, error) {
	now = now.In(loc)
	seed := domain.NewEventDraft(now)

	if in.Start != "" {
		start, err := parseTimeInput(in.Start, loc)
		if err != nil {
			return domain.EventDraft{}, err
		}
		// 終了を開始基準で作り直すため、開始を確定させてから新しい下書きを作る
		moved, err := seed.Apply(start.startEdit())
		if err != nil {
			return domain.EventDraft{}, err
		}
		seed = domain.NewEventDraft(moved.Start)
	}

	edits := []domain.Edit{
		domain.SetSubject(in.Subject),
		domain.SetLocation(in.Location),
		domain.SetDescription(in.Description),
		domain.SetAttendees(strings.Join(in.Attendees, ";")),
		domain.SetAllDay(in.AllDay),
	}
	if in.End != "" {
		end, err := parseTimeInput(in.End, loc)
		if err != nil {
			return domain.EventDraft{}, err
		}
		edits = append(edits, end.endEdit())
	}

	return seed.ApplyAll(edits...)
}
