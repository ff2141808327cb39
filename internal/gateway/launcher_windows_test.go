package gateway

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCanOpen_Windows(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		key    string
		result error
		want   bool
	}{
		{name: "Outlookが登録済み", rawURL: "ms-outlook://events/new?title=a", key: `HKEY_CLASSES_ROOT\ms-outlook`, result: nil, want: true},
		{name: "スキーム未登録", rawURL: "ms-outlook://events/new?title=a", key: `HKEY_CLASSES_ROOT\ms-outlook`, result: &exec.ExitError{}, want: false},
		{name: "ブラウザ", rawURL: "https://outlook.office.com/calendar/deeplink/compose", key: `HKEY_CLASSES_ROOT\https`, result: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := new(MockCommander)
			l := newTestLauncher(cmd)

			cmd.On("Output", mock.Anything, "reg", []string{"query", tt.key, "/v", "URL Protocol"}).Return([]byte{}, tt.result)

			ok, err := l.CanOpen(context.Background(), tt.rawURL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			cmd.AssertExpectations(t)
		})
	}
}

func TestCanOpen_WindowsCommandError(t *testing.T) {
	cmd := new(MockCommander)
	l := newTestLauncher(cmd)

	cmd.On("Output", mock.Anything, "reg", mock.Anything).Return(nil, exec.ErrNotFound)

	ok, err := l.CanOpen(context.Background(), "ms-outlook://events/new")
	assert.False(t, ok)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
	assert.Contains(t, err.Error(), "スキーム ms-outlook の確認に失敗しました")
}
