package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/k-negishi/outlook-event-linker/internal/composer"
	"github.com/k-negishi/outlook-event-linker/internal/dispatcher"
	"github.com/k-negishi/outlook-event-linker/internal/domain"
)

// MockDispatcher は Dispatcher のテスト用モック
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Activate(ctx context.Context, candidates []string) (string, error) {
	args := m.Called(ctx, candidates)
	return args.String(0), args.Error(1)
}

// MockNotifier は Notifier のテスト用モック
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, title, message string) error {
	args := m.Called(ctx, title, message)
	return args.Error(0)
}

// MockProber は dispatcher.Prober のテスト用モック
type MockProber struct {
	mock.Mock
}

func (m *MockProber) CanOpen(ctx context.Context, rawURL string) (bool, error) {
	args := m.Called(ctx, rawURL)
	return args.Bool(0), args.Error(1)
}

// MockOpener は dispatcher.Opener のテスト用モック
type MockOpener struct {
	mock.Mock
}

func (m *MockOpener) Open(ctx context.Context, rawURL string) error {
	args := m.Called(ctx, rawURL)
	return args.Error(0)
}

var jst = time.FixedZone("JST", 9*60*60)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestComposer(t *testing.T) *composer.Composer {
	t.Helper()
	p, err := composer.LookupProfile("current")
	require.NoError(t, err)
	c, err := composer.New(p, jst)
	require.NoError(t, err)
	return c
}

func testDraft() domain.EventDraft {
	return domain.EventDraft{
		Subject: "朝会",
		Start:   time.Date(2024, 1, 15, 9, 0, 0, 0, jst),
		End:     time.Date(2024, 1, 15, 9, 30, 0, 0, jst),
	}
}

// --- Execute テスト ---

func TestComposeExecute_Success(t *testing.T) {
	c := newTestComposer(t)
	mockDispatcher := new(MockDispatcher)
	mockNotifier := new(MockNotifier)
	uc := NewComposeEventUseCase(c, mockDispatcher, mockNotifier, discardLogger())

	links, err := c.BuildLinks(testDraft())
	require.NoError(t, err)

	mockDispatcher.On("Activate", mock.Anything, []string{links.Native, links.Web}).Return(links.Native, nil)

	activated, err := uc.Execute(context.Background(), testDraft())
	require.NoError(t, err)
	assert.Equal(t, links.Native, activated)
	mockDispatcher.AssertExpectations(t)
	mockNotifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestComposeExecute_BlankSubjectSkipsProbe(t *testing.T) {
	mockProber := new(MockProber)
	mockOpener := new(MockOpener)
	mockNotifier := new(MockNotifier)
	d := dispatcher.New(mockProber, mockOpener, discardLogger())
	uc := NewComposeEventUseCase(newTestComposer(t), d, mockNotifier, discardLogger())

	mockNotifier.On("Notify", mock.Anything, "エラー", "イベントの件名を入力してください").Return(nil)

	draft := testDraft()
	draft.Subject = "   "

	_, err := uc.Execute(context.Background(), draft)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, domain.ReasonEmptySubject, vErr.Reason)
	mockProber.AssertNumberOfCalls(t, "CanOpen", 0)
	mockOpener.AssertNumberOfCalls(t, "Open", 0)
	mockNotifier.AssertExpectations(t)
}

func TestComposeExecute_FallbackToWeb(t *testing.T) {
	c := newTestComposer(t)
	links, err := c.BuildLinks(testDraft())
	require.NoError(t, err)

	mockProber := new(MockProber)
	mockOpener := new(MockOpener)
	mockNotifier := new(MockNotifier)
	uc := NewComposeEventUseCase(c, dispatcher.New(mockProber, mockOpener, discardLogger()), mockNotifier, discardLogger())

	mockProber.On("CanOpen", mock.Anything, links.Native).Return(false, nil)
	mockProber.On("CanOpen", mock.Anything, links.Web).Return(true, nil)
	mockOpener.On("Open", mock.Anything, links.Web).Return(nil)

	activated, err := uc.Execute(context.Background(), testDraft())
	require.NoError(t, err)
	assert.Equal(t, links.Web, activated)
	mockProber.AssertNumberOfCalls(t, "CanOpen", 2)
	mockOpener.AssertNumberOfCalls(t, "Open", 1)
}

func TestComposeExecute_NoHandlerNotifiesUser(t *testing.T) {
	mockDispatcher := new(MockDispatcher)
	mockNotifier := new(MockNotifier)
	uc := NewComposeEventUseCase(newTestComposer(t), mockDispatcher, mockNotifier, discardLogger())

	mockDispatcher.On("Activate", mock.Anything, mock.Anything).Return("", dispatcher.ErrNoHandlerAvailable)
	mockNotifier.On("Notify", mock.Anything, "エラー", msgOpenFailure).Return(nil)

	_, err := uc.Execute(context.Background(), testDraft())
	assert.ErrorIs(t, err, dispatcher.ErrNoHandlerAvailable)
	mockNotifier.AssertExpectations(t)
}

func TestComposeExecute_ActivationErrorNotifiesSameMessageAsNoHandler(t *testing.T) {
	mockDispatcher := new(MockDispatcher)
	mockNotifier := new(MockNotifier)
	uc := NewComposeEventUseCase(newTestComposer(t), mockDispatcher, mockNotifier, discardLogger())

	actErr := &dispatcher.ActivationError{URL: "ms-outlook://events/new", Err: errors.New("boom")}
	mockDispatcher.On("Activate", mock.Anything, mock.Anything).Return("", actErr)
	mockNotifier.On("Notify", mock.Anything, "エラー", msgOpenFailure).Return(nil)

	_, err := uc.Execute(context.Background(), testDraft())
	assert.ErrorIs(t, err, actErr)
	mockNotifier.AssertExpectations(t)
}

func TestComposeExecute_NotifierFailureDoesNotMaskError(t *testing.T) {
	mockDispatcher := new(MockDispatcher)
	mockNotifier := new(MockNotifier)
	uc := NewComposeEventUseCase(newTestComposer(t), mockDispatcher, mockNotifier, discardLogger())

	mockDispatcher.On("Activate", mock.Anything, mock.Anything).Return("", dispatcher.ErrNoHandlerAvailable)
	mockNotifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("LINE API error"))

	_, err := uc.Execute(context.Background(), testDraft())
	assert.ErrorIs(t, err, dispatcher.ErrNoHandlerAvailable)
}

func TestUserMessage(t *testing.T) {
	actErr := &dispatcher.ActivationError{URL: "https://outlook.office.com/", Err: errors.New("boom")}

	assert.Equal(t, "イベントの件名を入力してください", userMessage(&domain.ValidationError{Reason: domain.ReasonEmptySubject}))
	assert.Equal(t, msgOpenFailure, userMessage(dispatcher.ErrNoHandlerAvailable))
	assert.Equal(t, userMessage(dispatcher.ErrNoHandlerAvailable), userMessage(actErr))
}
