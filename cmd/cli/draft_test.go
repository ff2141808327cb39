package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k-negishi/outlook-event-linker/internal/domain"
)

var jst = time.FixedZone("JST", 9*60*60)

var fixedNow = time.Date(2024, 1, 15, 8, 20, 0, 0, jst)

func TestParseTimeInput(t *testing.T) {
	tests := []struct {
		in   string
		kind inputKind
		want time.Time
	}{
		{"2024-01-15T10:00", kindDateTime, time.Date(2024, 1, 15, 10, 0, 0, 0, jst)},
		{"2024-01-15T10:00:30", kindDateTime, time.Date(2024, 1, 15, 10, 0, 30, 0, jst)},
		{"2024-01-15 10:00", kindDateTime, time.Date(2024, 1, 15, 10, 0, 0, 0, jst)},
		{"2024-01-15T01:00:00Z", kindDateTime, time.Date(2024, 1, 15, 10, 0, 0, 0, jst)},
		{"2024-01-15", kindDate, time.Date(2024, 1, 15, 0, 0, 0, 0, jst)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTimeInput(tt.in, jst)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, got.kind)
			assert.True(t, tt.want.Equal(got.t), "got %s", got.t)
		})
	}

	clock, err := parseTimeInput("14:30", jst)
	require.NoError(t, err)
	assert.Equal(t, kindClock, clock.kind)
	assert.Equal(t, 14, clock.t.Hour())
	assert.Equal(t, 30, clock.t.Minute())

	_, err = parseTimeInput("tomorrow", jst)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "日時の形式が不正です")
}

func TestBuildDraft_Defaults(t *testing.T) {
	d, err := buildDraft(draftInput{Subject: "朝会"}, fixedNow, jst)
	require.NoError(t, err)
	assert.Equal(t, "朝会", d.Subject)
	assert.Equal(t, fixedNow, d.Start)
	assert.Equal(t, fixedNow.Add(time.Hour), d.End)
	assert.False(t, d.IsAllDay)
}

func TestBuildDraft_StartOnlyKeepsOneHour(t *testing.T) {
	d, err := buildDraft(draftInput{Subject: "朝会", Start: "2023-12-01T09:00"}, fixedNow, jst)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 1, 9, 0, 0, 0, jst), d.Start)
	assert.Equal(t, time.Date(2023, 12, 1, 10, 0, 0, 0, jst), d.End)
}

func TestBuildDraft_StartAndEnd(t *testing.T) {
	d, err := buildDraft(draftInput{
		Subject:   "レビュー",
		Attendees: []string{"a@example.com", "b@example.com"},
		Start:     "2024-02-01T13:00",
		End:       "2024-02-01T15:30",
	}, fixedNow, jst)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 15, 30, 0, 0, jst), d.End)
	assert.Equal(t, "a@example.com;b@example.com", d.Attendees)
}

func TestBuildDraft_ClockOnly(t *testing.T) {
	d, err := buildDraft(draftInput{Subject: "ランチ", Start: "12:00", End: "13:15"}, fixedNow, jst)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 12, 0, 0, 0, jst), d.Start)
	assert.Equal(t, time.Date(2024, 1, 15, 13, 15, 0, 0, jst), d.End)
}

func TestBuildDraft_AllDayRange(t *testing.T) {
	d, err := buildDraft(draftInput{Subject: "出張", Start: "2024-03-04", End: "2024-03-06", AllDay: true}, fixedNow, jst)
	require.NoError(t, err)
	assert.True(t, d.IsAllDay)
	assert.Equal(t, 4, d.Start.Day())
	assert.Equal(t, 6, d.End.Day())
}

func TestBuildDraft_EndBeforeStartRejected(t *testing.T) {
	_, err := buildDraft(draftInput{Subject: "会議", Start: "2024-02-01T13:00", End: "2024-02-01T12:00"}, fixedNow, jst)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, domain.ReasonEndNotAfterStart, vErr.Reason)
}

func TestBuildDraft_InvalidInput(t *testing.T) {
	_, err := buildDraft(draftInput{Subject: "会議", Start: "next monday"}, fixedNow, jst)
	assert.Error(t, err)

	_, err = buildDraft(draftInput{Subject: "会議", End: "?"}, fixedNow, jst)
	assert.Error(t, err)
}
