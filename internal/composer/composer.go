package composer

import (
	"net/url"
	"strings"
	"time"

	"github.com/k-negishi/outlook-event-linker/internal/domain"
)

const (
	// nativeTimeLayout タイムゾーン表記なし。受け取り側で現地時刻として解釈される
	nativeTimeLayout = "2006-01-02T15:04:05"
	// webTimeLayout ミリ秒なしのUTC
	webTimeLayout = "2006-01-02T15:04:05Z"
)

// Composer 予定の下書きからOutlook用のリンクを生成する
type Composer struct {
	profile  Profile
	location *time.Location
}

// New リンク生成器を作成。locationはネイティブリンクの現地時刻と終日予定の日付判定に使う
func New(profile Profile, location *time.Location) (*Composer, error) {
	if err := profile.validate(); err != nil {
		return nil, err
	}
	if location == nil {
		location = time.Local
	}
	return &Composer{profile: profile, location: location}, nil
}

// Profile 使用中のプロファイル
func (c *Composer) Profile() Profile {
	return c.profile
}

// BuildLinks ネイティブ用とWeb用のURLを生成
func (c *Composer) BuildLinks(draft domain.EventDraft) (domain.LinkPair, error) {
	if err := draft.Validate(); err != nil {
		return domain.LinkPair{}, err
	}
	return domain.LinkPair{
		Native: c.build(draft, c.profile.NativeBase, c.profile.Native, c.nativeTimestamp),
		Web:    c.build(draft, c.profile.WebBase, c.profile.Web, formatWeb),
	}, nil
}

// build 必須項目、任意項目、終日フラグの順でクエリを組み立てる
func (c *Composer) build(draft domain.EventDraft, base string, names ParamNames, format func(time.Time) string) string {
	start, end := draft.Start, draft.End
	if draft.IsAllDay {
		start = domain.StartOfDay(start, c.location)
	}

	q := &query{}
	q.add(names.Subject, encodeComponent(draft.TrimmedSubject()))
	q.add(names.Start, format(start))
	if !draft.IsAllDay {
		q.add(names.End, format(end))
	}

	if c.profile.FieldSet == FieldSetExtended {
		q.addText(names.Location, draft.Location)
		q.addText(names.Description, draft.Description)
		q.addText(names.Attendees, draft.Attendees)
	}

	if draft.IsAllDay {
		q.add(names.AllDay, "true")
	}

	return base + "?" + q.String()
}

func (c *Composer) nativeTimestamp(t time.Time) string {
	if c.profile.NativeTimestamp == TimestampUTC {
		return formatWeb(t)
	}
	return t.In(c.location).Format(nativeTimeLayout)
}

func formatWeb(t time.Time) string {
	return t.UTC().Format(webTimeLayout)
}

// componentUnescaper QueryEscapeがエスケープするがencodeURIComponentでは残る記号を戻す
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent encodeURIComponentと同じ規則のパーセントエンコード
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// query 追加順を保つクエリ文字列。url.Valuesはキーでソートするため使わない
type query struct {
	b strings.Builder
}

func (q *query) add(name, encodedValue string) {
	if name == "" {
		return
	}
	if q.b.Len() > 0 {
		q.b.WriteByte('&')
	}
	q.b.WriteString(name)
	q.b.WriteByte('=')
	q.b.WriteString(encodedValue)
}

// addText 空白のみの値は省略する
func (q *query) addText(name, value string) {
	if value = strings.TrimSpace(value); value != "" {
		q.add(name, encodeComponent(value))
	}
}

func (q *query) String() string {
	return q.b.String()
}
