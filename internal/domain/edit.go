package domain

import (
	"fmt"
	"time"
)

// Field 編集対象の項目
type Field int

const (
	FieldSubject Field = iota
	FieldLocation
	FieldDescription
	FieldAttendees
	FieldAllDay
	FieldStartDate
	FieldStartTime
	FieldStart
	FieldEndDate
	FieldEndTime
	FieldEnd
)

var fieldNames = [...]string{
	FieldSubject:     "subject",
	FieldLocation:    "location",
	FieldDescription: "description",
	FieldAttendees:   "attendees",
	FieldAllDay:      "all_day",
	FieldStartDate:   "start_date",
	FieldStartTime:   "start_time",
	FieldStart:       "start",
	FieldEndDate:     "end_date",
	FieldEndTime:     "end_time",
	FieldEnd:         "end",
}

func (f Field) String() string {
	if f >= 0 && int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Edit フォームからの1回分の入力
type Edit struct {
	Field Field
	Text  string
	Time  time.Time
	Flag  bool
}

func SetSubject(s string) Edit     { return Edit{Field: FieldSubject, Text: s} }
func SetLocation(s string) Edit    { return Edit{Field: FieldLocation, Text: s} }
func SetDescription(s string) Edit { return Edit{Field: FieldDescription, Text: s} }
func SetAttendees(s string) Edit   { return Edit{Field: FieldAttendees, Text: s} }
func SetAllDay(v bool) Edit        { return Edit{Field: FieldAllDay, Flag: v} }

// SetStartDate 開始日のみ変更（時刻は維持）
func SetStartDate(t time.Time) Edit { return Edit{Field: FieldStartDate, Time: t} }

// SetStartTime 開始時刻の時・分のみ変更（日付は維持）
func SetStartTime(t time.Time) Edit { return Edit{Field: FieldStartTime, Time: t} }

// SetStart 開始日時をまとめて変更
func SetStart(t time.Time) Edit { return Edit{Field: FieldStart, Time: t} }

func SetEndDate(t time.Time) Edit { return Edit{Field: FieldEndDate, Time: t} }
func SetEndTime(t time.Time) Edit { return Edit{Field: FieldEndTime, Time: t} }
func SetEnd(t time.Time) Edit     { return Edit{Field: FieldEnd, Time: t} }

// Apply 編集を適用した新しい下書きを返す。
// 開始の変更で終了以降になった場合は終了を開始+1時間に自動補正し、
// 終了の変更が開始より前になる場合はエラーを返して元の値を維持する。
func (d EventDraft) Apply(e Edit) (EventDraft, error) {
	next := d
	switch e.Field {
	case FieldSubject:
		next.Subject = e.Text
	case FieldLocation:
		next.Location = e.Text
	case FieldDescription:
		next.Description = e.Text
	case FieldAttendees:
		next.Attendees = e.Text
	case FieldAllDay:
		next.IsAllDay = e.Flag
		if !next.IsAllDay && !next.End.After(next.Start) {
			next.End = next.Start.Add(defaultDuration)
		}
	case FieldStartDate:
		return d.withStart(withDate(d.Start, e.Time)), nil
	case FieldStartTime:
		return d.withStart(withClock(d.Start, e.Time)), nil
	case FieldStart:
		return d.withStart(e.Time), nil
	case FieldEndDate:
		end := withDate(d.End, e.Time)
		if dateBefore(end, d.Start) {
			return d, &ValidationError{Field: e.Field, Reason: ReasonEndDateBeforeStart}
		}
		if !d.IsAllDay && !end.After(d.Start) {
			return d, &ValidationError{Field: e.Field, Reason: ReasonEndNotAfterStart}
		}
		next.End = end
	case FieldEndTime:
		end := withClock(d.End, e.Time)
		if !end.After(d.Start) {
			return d, &ValidationError{Field: e.Field, Reason: ReasonEndNotAfterStart}
		}
		next.End = end
	case FieldEnd:
		if d.IsAllDay {
			if dateBefore(e.Time, d.Start) {
				return d, &ValidationError{Field: e.Field, Reason: ReasonEndDateBeforeStart}
			}
		} else if !e.Time.After(d.Start) {
			return d, &ValidationError{Field: e.Field, Reason: ReasonEndNotAfterStart}
		}
		next.End = e.Time
	default:
		return d, fmt.Errorf("未対応の編集項目です: %s", e.Field)
	}
	return next, nil
}

// ApplyAll 編集を順に適用。最初のエラーで中断し、その時点までの下書きを返す
func (d EventDraft) ApplyAll(edits ...Edit) (EventDraft, error) {
	for _, e := range edits {
		next, err := d.Apply(e)
		if err != nil {
			return d, err
		}
		d = next
	}
	return d, nil
}

func (d EventDraft) withStart(start time.Time) EventDraft {
	d.Start = start
	if !start.Before(d.End) {
		d.End = start.Add(defaultDuration)
	}
	return d
}

// withDate baseの日付部分をselectedの年月日に置き換える
func withDate(base, selected time.Time) time.Time {
	return time.Date(selected.Year(), selected.Month(), selected.Day(),
		base.Hour(), base.Minute(), base.Second(), base.Nanosecond(), base.Location())
}

// withClock baseの時・分をselectedの値に置き換える
func withClock(base, selected time.Time) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(),
		selected.Hour(), selected.Minute(), base.Second(), base.Nanosecond(), base.Location())
}
