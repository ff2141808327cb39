package domain

import (
	"strings"
	"time"
)

// defaultDuration 新規作成時の予定の長さ
const defaultDuration = time.Hour

// EventDraft 作成中のカレンダー予定。値として扱い、更新はApplyで新しい値を返す
type EventDraft struct {
	Subject     string
	Location    string
	Description string
	// Attendees セミコロン区切りのメールアドレス（形式は検証しない）
	Attendees string
	Start     time.Time
	End       time.Time
	IsAllDay  bool
}

// LinkPair 予定から生成したネイティブアプリ用とWeb用のURL
type LinkPair struct {
	Native string
	Web    string
}

// Candidates 試行順に並べたURL
func (p LinkPair) Candidates() []string {
	return []string{p.Native, p.Web}
}

// NewEventDraft 空の下書きを作成（開始は現在時刻、終了は1時間後）
func NewEventDraft(now time.Time) EventDraft {
	return EventDraft{
		Start: now,
		End:   now.Add(defaultDuration),
	}
}

// TrimmedSubject 前後の空白を除いた件名
func (d EventDraft) TrimmedSubject() string {
	return strings.TrimSpace(d.Subject)
}

// AttendeeList 参加者を個別のアドレスに分割（空要素は除外）
func (d EventDraft) AttendeeList() []string {
	var attendees []string
	for _, a := range strings.Split(d.Attendees, ";") {
		if a = strings.TrimSpace(a); a != "" {
			attendees = append(attendees, a)
		}
	}
	return attendees
}

// Validate 送信前の検証
func (d EventDraft) Validate() error {
	if d.TrimmedSubject() == "" {
		return &ValidationError{Field: FieldSubject, Reason: ReasonEmptySubject}
	}
	if d.IsAllDay {
		if dateBefore(d.End, d.Start) {
			return &ValidationError{Field: FieldEndDate, Reason: ReasonEndDateBeforeStart}
		}
		return nil
	}
	if !d.End.After(d.Start) {
		return &ValidationError{Field: FieldEndTime, Reason: ReasonEndNotAfterStart}
	}
	return nil
}

// StartOfDay 指定タイムゾーンでの日付の0時
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// dateBefore aの日付がbの日付より前か（bのタイムゾーンで比較）
func dateBefore(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
