package gateway

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/k-negishi/outlook-event-linker/internal/domain"
)

const icsProductID = "-//outlook-event-linker//JA"

// ICSExporter 下書きをiCalendar形式で書き出す。Outlookを開けない環境でのファイル取り込み用
type ICSExporter struct {
	timezone *time.Location
	clock    func() time.Time
	newUID   func() string
}

// NewICSExporter timezoneは終日予定の日付判定に使う
func NewICSExporter(timezone *time.Location) *ICSExporter {
	if timezone == nil {
		timezone = time.Local
	}
	return &ICSExporter{
		timezone: timezone,
		clock:    time.Now,
		newUID:   func() string { return uuid.New().String() },
	}
}

// Export 1件のVEVENTを含むカレンダーを書き出す
func (e *ICSExporter) Export(w io.Writer, draft domain.EventDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icsProductID)
	cal.Children = append(cal.Children, e.toVEvent(draft))

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("iCalendar形式への変換に失敗しました: %w", err)
	}
	return nil
}

func (e *ICSExporter) toVEvent(draft domain.EventDraft) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, e.newUID())
	ve.Props.SetDateTime(ical.PropDateTimeStamp, e.clock().UTC())
	ve.Props.SetText(ical.PropSummary, draft.TrimmedSubject())

	if draft.IsAllDay {
		start := domain.StartOfDay(draft.Start, e.timezone)
		// DTENDは排他的なので最終日の翌日
		end := domain.StartOfDay(draft.End, e.timezone).AddDate(0, 0, 1)
		ve.Props.SetDate(ical.PropDateTimeStart, start)
		ve.Props.SetDate(ical.PropDateTimeEnd, end)
	} else {
		ve.Props.SetDateTime(ical.PropDateTimeStart, draft.Start.UTC())
		ve.Props.SetDateTime(ical.PropDateTimeEnd, draft.End.UTC())
	}

	if loc := trimmed(draft.Location); loc != "" {
		ve.Props.SetText(ical.PropLocation, loc)
	}
	if desc := trimmed(draft.Description); desc != "" {
		ve.Props.SetText(ical.PropDescription, desc)
	}
	for _, attendee := range draft.AttendeeList() {
		p := ical.NewProp(ical.PropAttendee)
		p.Value = "mailto:" + attendee
		ve.Props.Add(p)
	}
	return ve
}
