package composer

import (
	"fmt"
	"sort"
)

// FieldSet 送信対象とする項目の範囲
type FieldSet string

const (
	// FieldSetMinimal 件名・日時・終日のみ
	FieldSetMinimal FieldSet = "minimal"
	// FieldSetExtended 場所・説明・参加者も含める
	FieldSetExtended FieldSet = "extended"
)

// TimestampStyle ネイティブリンクでの日時表現
type TimestampStyle string

const (
	// TimestampLocal タイムゾーンなしの現地時刻 (YYYY-MM-DDTHH:MM:SS)
	TimestampLocal TimestampStyle = "local"
	// TimestampUTC UTC (YYYY-MM-DDTHH:MM:SSZ)
	TimestampUTC TimestampStyle = "utc"
)

const (
	DefaultNativeBase = "ms-outlook://events/new"
	DefaultWebBase    = "https://outlook.office.com/calendar/deeplink/compose"

	DefaultProfile = "current"
)

// ParamNames クエリパラメータ名の対応表
type ParamNames struct {
	Subject     string `toml:"subject"`
	Start       string `toml:"start"`
	End         string `toml:"end"`
	Location    string `toml:"location"`
	Description string `toml:"description"`
	Attendees   string `toml:"attendees"`
	AllDay      string `toml:"allday"`
}

// Profile リンク生成の設定。ネイティブとWebは別々の連携先なのでパラメータ表も別に持つ
type Profile struct {
	Name            string
	FieldSet        FieldSet
	NativeBase      string
	NativeTimestamp TimestampStyle
	Native          ParamNames
	WebBase         string
	Web             ParamNames
}

var webParams = ParamNames{
	Subject:     "subject",
	Start:       "startdt",
	End:         "enddt",
	Location:    "location",
	Description: "body",
	Attendees:   "to",
	AllDay:      "allday",
}

var legacyNativeParams = ParamNames{
	Subject:     "subject",
	Start:       "startdt",
	End:         "enddt",
	Location:    "location",
	Description: "description",
	Attendees:   "attendees",
	AllDay:      "allday",
}

var currentNativeParams = ParamNames{
	Subject:     "title",
	Start:       "start",
	End:         "end",
	Location:    "location",
	Description: "description",
	Attendees:   "attendees",
	AllDay:      "allday",
}

var builtinProfiles = map[string]Profile{
	"classic": {
		Name:            "classic",
		FieldSet:        FieldSetMinimal,
		NativeBase:      DefaultNativeBase,
		NativeTimestamp: TimestampUTC,
		Native:          legacyNativeParams,
		WebBase:         DefaultWebBase,
		Web:             webParams,
	},
	"extended": {
		Name:            "extended",
		FieldSet:        FieldSetExtended,
		NativeBase:      DefaultNativeBase,
		NativeTimestamp: TimestampUTC,
		Native:          legacyNativeParams,
		WebBase:         DefaultWebBase,
		Web:             webParams,
	},
	"current": {
		Name:            "current",
		FieldSet:        FieldSetExtended,
		NativeBase:      DefaultNativeBase,
		NativeTimestamp: TimestampLocal,
		Native:          currentNativeParams,
		WebBase:         DefaultWebBase,
		Web:             webParams,
	},
}

// LookupProfile 組み込みプロファイルを名前で取得
func LookupProfile(name string) (Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	p, ok := builtinProfiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("不明なリンクプロファイルです: %s (利用可能: %v)", name, ProfileNames())
	}
	return p, nil
}

// ProfileNames 組み込みプロファイル名の一覧
func ProfileNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p Profile) validate() error {
	if p.NativeBase == "" || p.WebBase == "" {
		return fmt.Errorf("プロファイル %s のベースURLが設定されていません", p.Name)
	}
	switch p.FieldSet {
	case FieldSetMinimal, FieldSetExtended:
	default:
		return fmt.Errorf("プロファイル %s の項目セットが不正です: %q", p.Name, p.FieldSet)
	}
	switch p.NativeTimestamp {
	case TimestampLocal, TimestampUTC:
	default:
		return fmt.Errorf("プロファイル %s の日時形式が不正です: %q", p.Name, p.NativeTimestamp)
	}
	for _, names := range []ParamNames{p.Native, p.Web} {
		if names.Subject == "" || names.Start == "" || names.End == "" || names.AllDay == "" {
			return fmt.Errorf("プロファイル %s の必須パラメータ名が設定されていません", p.Name)
		}
	}
	return nil
}
