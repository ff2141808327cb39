package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/k-negishi/outlook-event-linker/internal/composer"
	"github.com/k-negishi/outlook-event-linker/internal/config"
	"github.com/k-negishi/outlook-event-linker/internal/dispatcher"
	"github.com/k-negishi/outlook-event-linker/internal/domain"
	"github.com/k-negishi/outlook-event-linker/internal/gateway"
	"github.com/k-negishi/outlook-event-linker/internal/logging"
	"github.com/k-negishi/outlook-event-linker/internal/usecase"
)

func main() {
	app := newApp(os.Stdout, os.Stderr, time.Now)
	if err := app.Run(os.Args); err != nil {
		slog.Error("実行に失敗しました", "error", err)
		os.Exit(1)
	}
}

// env コマンド共通の依存関係
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	location *time.Location
	composer *composer.Composer
	notifier *gateway.MultiNotifier
}

func newApp(stdout, stderr io.Writer, clock func() time.Time) *cli.App {
	return &cli.App{
		Name:      "outlook-event-linker",
		Usage:     "Outlookの予定作成画面をディープリンクで開きます",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "profile", Usage: "リンクプロファイル (" + fmt.Sprint(composer.ProfileNames()) + ")"},
			&cli.StringFlag{Name: "profile-file", Usage: "リンクプロファイルのTOMLファイル"},
			&cli.StringFlag{Name: "log-level", Usage: "ログレベル (DEBUG/INFO/WARN/ERROR)"},
		},
		Commands: []*cli.Command{
			openCommand(stderr, clock),
			linksCommand(stderr, clock),
			importCommand(stderr),
			exportCommand(stderr, clock),
		},
	}
}

func draftFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "subject", Aliases: []string{"s"}, Usage: "件名（必須）"},
		&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Usage: "場所"},
		&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "説明"},
		&cli.StringSliceFlag{Name: "attendee", Aliases: []string{"a"}, Usage: "参加者のメールアドレス（複数指定可）"},
		&cli.StringFlag{Name: "start", Usage: "開始日時 (2024-01-15T10:00, 2024-01-15, 10:00)"},
		&cli.StringFlag{Name: "end", Usage: "終了日時 (2024-01-15T11:00, 2024-01-15, 11:00)"},
		&cli.BoolFlag{Name: "all-day", Usage: "終日の予定にする"},
	}
}

func draftFromContext(c *cli.Context, e *env, clock func() time.Time) (domain.EventDraft, error) {
	return buildDraft(draftInput{
		Subject:     c.String("subject"),
		Location:    c.String("location"),
		Description: c.String("description"),
		Attendees:   c.StringSlice("attendee"),
		Start:       c.String("start"),
		End:         c.String("end"),
		AllDay:      c.Bool("all-day"),
	}, clock(), e.location)
}

// setup 設定を読み込み、コマンドで使う部品を組み立てる
func setup(c *cli.Context, stderr io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}
	if v := c.String("profile"); v != "" {
		cfg.LinkProfile = v
	}
	if v := c.String("profile-file"); v != "" {
		cfg.LinkProfileFile = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}

	logger := logging.New(cfg.LogLevel, stderr)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	profile, err := cfg.Profile()
	if err != nil {
		return nil, err
	}
	comp, err := composer.New(profile, loc)
	if err != nil {
		return nil, err
	}

	notifiers := []gateway.Notifier{gateway.NewConsoleNotifier(stderr)}
	if cfg.LINEEnabled() {
		notifiers = append(notifiers, gateway.NewLINENotifier(cfg.LineChannelAccessToken, cfg.LineUserID))
	}

	logger.Debug("設定を読み込みました", "profile", profile.Name, "timezone", loc.String(), "webProbe", cfg.WebProbe)

	return &env{
		cfg:      cfg,
		logger:   logger,
		location: loc,
		composer: comp,
		notifier: gateway.NewMultiNotifier(notifiers...),
	}, nil
}

func (e *env) newDispatcher() *dispatcher.Dispatcher {
	launcher := gateway.NewSystemLauncher(e.logger)
	var prober dispatcher.Prober = launcher
	if e.cfg.WebProbe == config.WebProbeHTTP {
		prober = gateway.NewReachabilityProber(launcher, e.logger)
	}
	return dispatcher.New(prober, launcher, e.logger)
}

func (e *env) openInOutlook(ctx context.Context, w io.Writer, draft domain.EventDraft) error {
	uc := usecase.NewComposeEventUseCase(e.composer, e.newDispatcher(), e.notifier, e.logger)
	activated, err := uc.Execute(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, activated)
	return nil
}

// notifyError 入力エラーをユーザーに通知。通知の失敗は元のエラーを隠さないようログのみ
func (e *env) notifyError(ctx context.Context, err error) {
	if nErr := e.notifier.Notify(ctx, "エラー", err.Error()); nErr != nil {
		e.logger.Error("通知の送信に失敗しました", "error", nErr)
	}
}

func printLinks(w io.Writer, links domain.LinkPair) {
	fmt.Fprintf(w, "native: %s\nweb:    %s\n", links.Native, links.Web)
}

func openCommand(stderr io.Writer, clock func() time.Time) *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "予定を作成してOutlookアプリ（無ければWeb版）で開く",
		Flags: draftFlags(),
		Action: func(c *cli.Context) error {
			e, err := setup(c, stderr)
			if err != nil {
				return err
			}
			draft, err := draftFromContext(c, e, clock)
			if err != nil {
				e.notifyError(c.Context, err)
				return err
			}
			return e.openInOutlook(c.Context, c.App.Writer, draft)
		},
	}
}

func linksCommand(stderr io.Writer, clock func() time.Time) *cli.Command {
	return &cli.Command{
		Name:  "links",
		Usage: "Outlook用のリンクを表示する（開かない）",
		Flags: draftFlags(),
		Action: func(c *cli.Context) error {
			e, err := setup(c, stderr)
			if err != nil {
				return err
			}
			draft, err := draftFromContext(c, e, clock)
			if err != nil {
				return err
			}
			links, err := e.composer.BuildLinks(draft)
			if err != nil {
				return err
			}
			printLinks(c.App.Writer, links)
			return nil
		},
	}
}

func importCommand(stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Google Calendarの予定をOutlookで作成する",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "event-id", Usage: "Google Calendarの予定ID", Required: true},
			&cli.BoolFlag{Name: "print", Usage: "開かずにリンクを表示する"},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c, stderr)
			if err != nil {
				return err
			}
			if e.cfg.GoogleCredentials == "" {
				return fmt.Errorf("GOOGLE_CREDENTIALS環境変数が設定されていません")
			}

			var source usecase.EventSource
			source, err = gateway.NewGoogleCalendarRepository(c.Context, []byte(e.cfg.GoogleCredentials), e.cfg.CalendarID, e.location)
			if err != nil {
				return err
			}

			draft, err := source.GetEvent(c.Context, c.String("event-id"))
			if err != nil {
				return err
			}
			e.logger.Info("Google Calendarから予定を読み込みました", "subject", draft.Subject, "allDay", draft.IsAllDay)

			if c.Bool("print") {
				links, err := e.composer.BuildLinks(draft)
				if err != nil {
					return err
				}
				printLinks(c.App.Writer, links)
				return nil
			}
			return e.openInOutlook(c.Context, c.App.Writer, draft)
		},
	}
}

func exportCommand(stderr io.Writer, clock func() time.Time) *cli.Command {
	flags := append(draftFlags(), &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   "-",
		Usage:   "出力先の.icsファイル（- で標準出力）",
	})
	return &cli.Command{
		Name:  "export",
		Usage: "予定をiCalendar(.ics)形式で書き出す",
		Flags: flags,
		Action: func(c *cli.Context) error {
			e, err := setup(c, stderr)
			if err != nil {
				return err
			}
			draft, err := draftFromContext(c, e, clock)
			if err != nil {
				return err
			}

			w := c.App.Writer
			if path := c.String("output"); path != "-" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("出力ファイルの作成に失敗しました: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := gateway.NewICSExporter(e.location).Export(w, draft); err != nil {
				return err
			}
			e.logger.Info("iCalendarファイルを書き出しました", "output", c.String("output"))
			return nil
		},
	}
}
