package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"
)

// lineTextLimit LINEのテキストメッセージの最大文字数
const lineTextLimit = 5000

// LINENotifier LINE Messaging APIを使用したNotifierの実装
type LINENotifier struct {
	channelAccessToken string
	userID             string
	httpClient         *http.Client
	endpoint           string
}

// lineMessage LINE APIに送信するメッセージ構造体
type lineMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// linePushRequest LINE Push APIのリクエスト構造体
type linePushRequest struct {
	To       string        `json:"to"`
	Messages []lineMessage `json:"messages"`
}

// lineErrorResponse LINE APIのエラーレスポンス構造体
type lineErrorResponse struct {
	Message string `json:"message"`
	Details []struct {
		Message  string `json:"message"`
		Property string `json:"property"`
	} `json:"details"`
}

// NewLINENotifier LINE通知クライアントを作成
func NewLINENotifier(channelAccessToken, userID string) *LINENotifier {
	return &LINENotifier{
		channelAccessToken: channelAccessToken,
		userID:             userID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoint: "https://api.line.me/v2/bot/message/push",
	}
}

// Notify タイトルと本文を1通のメッセージとしてLINEに送信
func (n *LINENotifier) Notify(ctx context.Context, title, message string) error {
	return n.sendPushMessage(ctx, buildLINEText(title, message))
}

// buildLINEText 見出し付きの本文を作成し、上限を超える場合は切り詰める
func buildLINEText(title, message string) string {
	text := fmt.Sprintf("【%s】\n%s", title, message)
	if utf8.RuneCountInString(text) <= lineTextLimit {
		return text
	}
	runes := []rune(text)
	return string(runes[:lineTextLimit-1]) + "…"
}

// sendPushMessage LINE Push APIでメッセージを送信
func (n *LINENotifier) sendPushMessage(ctx context.Context, message string) error {
	pushRequest := linePushRequest{
		To: n.userID,
		Messages: []lineMessage{
			{
				Type: "text",
				Text: message,
			},
		},
	}

	requestBody, err := json.Marshal(pushRequest)
	if err != nil {
		return fmt.Errorf("リクエストボディのJSON変換に失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		n.endpoint,
		bytes.NewBuffer(requestBody),
	)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", n.channelAccessToken))

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("LINE APIリクエストの送信に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// エラーレスポンスの詳細を取得
		var errorResponse lineErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errorResponse); err != nil {
			return fmt.Errorf("LINE API呼び出しが失敗しました (Status: %d, レスポンス解析不可: %v)", resp.StatusCode, err)
		}

		errorDetails := errorResponse.Message
		if len(errorResponse.Details) > 0 {
			errorDetails += fmt.Sprintf(" (詳細: %s)", errorResponse.Details[0].Message)
		}

		return fmt.Errorf("LINE API呼び出しが失敗しました (Status: %d): %s", resp.StatusCode, errorDetails)
	}

	return nil
}
