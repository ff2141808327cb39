package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ConsoleNotifier 端末にメッセージを表示するNotifierの実装
type ConsoleNotifier struct {
	w io.Writer
}

// NewConsoleNotifier 出力先を指定して作成
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Notify(_ context.Context, title, message string) error {
	_, err := fmt.Fprintf(n.w, "[%s] %s\n", title, message)
	return err
}

// Notifier 通知先のインターフェース
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// MultiNotifier 複数の通知先へ順に送る。失敗があっても残りには送信する
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier nilの通知先は無視する
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	m := &MultiNotifier{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

func (m *MultiNotifier) Notify(ctx context.Context, title, message string) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, title, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
