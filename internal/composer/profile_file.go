package composer

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// profileFile TOMLファイルの構造
//
//	[profile]
//	name = "tenant"
//	base = "current"
//	native_base = "ms-outlook://events/new"
//
//	[profile.native]
//	subject = "title"
type profileFile struct {
	Profile struct {
		Name            string     `toml:"name"`
		Base            string     `toml:"base"`
		FieldSet        string     `toml:"field_set"`
		NativeBase      string     `toml:"native_base"`
		NativeTimestamp string     `toml:"native_timestamp"`
		WebBase         string     `toml:"web_base"`
		Native          ParamNames `toml:"native"`
		Web             ParamNames `toml:"web"`
	} `toml:"profile"`
}

// LoadProfileFile TOMLファイルからプロファイルを読み込む
func LoadProfileFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("プロファイルファイルの読み込みに失敗しました: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile TOMLを解析し、継承元の組み込みプロファイルに上書きする
func ParseProfile(data []byte) (Profile, error) {
	var f profileFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return Profile{}, fmt.Errorf("プロファイルファイルの解析に失敗しました: %w", err)
	}

	src := f.Profile
	p, err := LookupProfile(src.Base)
	if err != nil {
		return Profile{}, err
	}

	if src.Name != "" {
		p.Name = src.Name
	}
	if src.FieldSet != "" {
		p.FieldSet = FieldSet(src.FieldSet)
	}
	if src.NativeBase != "" {
		p.NativeBase = src.NativeBase
	}
	if src.NativeTimestamp != "" {
		p.NativeTimestamp = TimestampStyle(src.NativeTimestamp)
	}
	if src.WebBase != "" {
		p.WebBase = src.WebBase
	}
	p.Native = overrideParams(p.Native, src.Native)
	p.Web = overrideParams(p.Web, src.Web)

	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func overrideParams(base, override ParamNames) ParamNames {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.Subject, override.Subject)
	set(&base.Start, override.Start)
	set(&base.End, override.End)
	set(&base.Location, override.Location)
	set(&base.Description, override.Description)
	set(&base.Attendees, override.Attendees)
	set(&base.AllDay, override.AllDay)
	return base
}
