package domain

// Reason 検証エラーの種類
type Reason string

const (
	ReasonEmptySubject       Reason = "empty_subject"
	ReasonEndDateBeforeStart Reason = "end_date_before_start"
	ReasonEndNotAfterStart   Reason = "end_not_after_start"
)

var reasonMessages = map[Reason]string{
	ReasonEmptySubject:       "イベントの件名を入力してください",
	ReasonEndDateBeforeStart: "終了日を開始日より前にすることはできません",
	ReasonEndNotAfterStart:   "終了時刻は開始時刻より後にしてください",
}

// Message ユーザー向けのメッセージ
func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// ValidationError 入力内容の検証エラー。ユーザーに表示して操作を中止する
type ValidationError struct {
	Field  Field
	Reason Reason
}

func (e *ValidationError) Error() string {
	return e.Reason.Message()
}
