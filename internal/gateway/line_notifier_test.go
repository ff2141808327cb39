package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTestLINENotifier テスト用の LINENotifier を構築するヘルパー
func newTestLINENotifier(token, userID string, httpClient *http.Client, endpoint string) *LINENotifier {
	return &LINENotifier{
		channelAccessToken: token,
		userID:             userID,
		httpClient:         httpClient,
		endpoint:           endpoint,
	}
}

// --- buildLINEText テスト ---

func TestBuildLINEText(t *testing.T) {
	text := buildLINEText("エラー", "Outlookを開けませんでした")
	assert.Equal(t, "【エラー】\nOutlookを開けませんでした", text)
}

func TestBuildLINEText_Truncates(t *testing.T) {
	text := buildLINEText("Outlook予定リンク", strings.Repeat("あ", lineTextLimit))
	assert.Equal(t, lineTextLimit, utf8.RuneCountInString(text))
	assert.True(t, strings.HasSuffix(text, "…"))
}

// --- Notify テスト（httptest 使用） ---

func TestNotify_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ヘッダーを検証
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		// リクエストボディを検証
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var pushReq linePushRequest
		err = json.Unmarshal(body, &pushReq)
		require.NoError(t, err)
		assert.Equal(t, "test-user", pushReq.To)
		assert.Len(t, pushReq.Messages, 1)
		assert.Equal(t, "text", pushReq.Messages[0].Type)
		assert.Contains(t, pushReq.Messages[0].Text, "ms-outlook://events/new")

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := newTestLINENotifier("test-token", "test-user", server.Client(), server.URL)

	err := n.Notify(context.Background(), "Outlook予定リンク", "ms-outlook://events/new?title=test")
	assert.NoError(t, err)
}

func TestNotify_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		err := json.NewEncoder(w).Encode(map[string]any{
			"message": "Invalid request",
			"details": []map[string]string{{"message": "must be non-empty", "property": "messages[0].text"}},
		})
		require.NoError(t, err)
	}))
	defer server.Close()

	n := newTestLINENotifier("test-token", "test-user", server.Client(), server.URL)

	err := n.Notify(context.Background(), "エラー", "テストメッセージ")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LINE API呼び出しが失敗しました (Status: 400): Invalid request (詳細: must be non-empty)")
}

func TestNotify_UnparsableErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	n := newTestLINENotifier("test-token", "test-user", server.Client(), server.URL)

	err := n.Notify(context.Background(), "エラー", "テストメッセージ")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "レスポンス解析不可")
}

// --- ConsoleNotifier / MultiNotifier テスト ---

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf)

	require.NoError(t, n.Notify(context.Background(), "エラー", "イベントの件名を入力してください"))
	assert.Equal(t, "[エラー] イベントの件名を入力してください\n", buf.String())
}

// MockNotifier は Notifier のテスト用モック
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, title, message string) error {
	args := m.Called(ctx, title, message)
	return args.Error(0)
}

func TestMultiNotifier_SendsToAll(t *testing.T) {
	first := new(MockNotifier)
	second := new(MockNotifier)
	first.On("Notify", mock.Anything, "エラー", "msg").Return(errors.New("LINE API error"))
	second.On("Notify", mock.Anything, "エラー", "msg").Return(nil)

	m := NewMultiNotifier(first, nil, second)
	err := m.Notify(context.Background(), "エラー", "msg")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LINE API error")
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestMultiNotifier_Empty(t *testing.T) {
	assert.NoError(t, NewMultiNotifier().Notify(context.Background(), "a", "b"))
}
