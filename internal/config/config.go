package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"

	"github.com/k-negishi/outlook-event-linker/internal/composer"
)

const (
	// WebProbeNone Web版URLはブラウザの有無のみ確認
	WebProbeNone = "none"
	// WebProbeHTTP Web版URLにHEADリクエストを送って到達確認
	WebProbeHTTP = "http"
)

// SSMParameterGetter Parameter Storeからの取得処理
type SSMParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Config アプリケーション設定構造体
type Config struct {
	// リンク生成設定
	LinkProfile     string
	LinkProfileFile string
	WebProbe        string

	// LINE API設定（任意）
	LineChannelAccessToken string
	LineUserID             string

	// Google Calendar設定（予定の取り込み時のみ使用）
	GoogleCredentials string
	CalendarID        string

	// その他設定
	LogLevel string
	Timezone string

	// AWS関連（本番環境でのみ使用）
	ssmClient SSMParameterGetter
}

// Load 環境に応じて設定を読み込み
func Load() (*Config, error) {
	// AWS Lambda環境かどうか判定
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return loadAWSConfig()
	}
	return loadLocalConfig()
}

// loadLocalConfig ローカル環境用の設定読み込み。必須項目はない
func loadLocalConfig() (*Config, error) {
	// .envファイルを読み込み（存在する場合のみ）
	_ = godotenv.Load()

	cfg := &Config{
		LinkProfile:            getEnvOrDefault("LINK_PROFILE", composer.DefaultProfile),
		LinkProfileFile:        getEnvOrDefault("LINK_PROFILE_FILE", ""),
		WebProbe:               getEnvOrDefault("WEB_PROBE", WebProbeNone),
		LineChannelAccessToken: getEnvOrDefault("LINE_CHANNEL_ACCESS_TOKEN", ""),
		LineUserID:             getEnvOrDefault("LINE_USER_ID", ""),
		GoogleCredentials:      getEnvOrDefault("GOOGLE_CREDENTIALS", ""),
		CalendarID:             getEnvOrDefault("CALENDAR_ID", "primary"),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "INFO"),
		Timezone:               getEnvOrDefault("TIMEZONE", "Local"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadAWSConfig AWS Lambda環境用の設定読み込み
func loadAWSConfig() (*Config, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("AWS設定の読み込みに失敗しました: %w", err)
	}

	cfg := &Config{
		LinkProfile:     getEnvOrDefault("LINK_PROFILE", composer.DefaultProfile),
		LinkProfileFile: getEnvOrDefault("LINK_PROFILE_FILE", ""),
		WebProbe:        WebProbeNone,
		CalendarID:      getEnvOrDefault("CALENDAR_ID", "primary"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "INFO"),
		Timezone:        getEnvOrDefault("TIMEZONE", "Asia/Tokyo"),
		ssmClient:       ssm.NewFromConfig(awsConfig),
	}

	// Parameter Storeから機密情報を取得
	if err := cfg.loadFromParameterStore(); err != nil {
		return nil, fmt.Errorf("Parameter Storeからの設定読み込みに失敗しました: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromParameterStore Parameter Storeから機密情報を読み込み
func (c *Config) loadFromParameterStore() error {
	ctx := context.TODO()

	lineTokenParam := getEnvOrDefault("SSM_LINE_TOKEN_PARAM", "/outlook-event-linker/line-channel-access-token")
	lineToken, err := c.getParameter(ctx, lineTokenParam, true)
	if err != nil {
		return fmt.Errorf("LINE Channel Access Tokenの取得に失敗しました: %w", err)
	}
	c.LineChannelAccessToken = lineToken

	lineUserParam := getEnvOrDefault("SSM_LINE_USER_ID_PARAM", "/outlook-event-linker/line-user-id")
	lineUser, err := c.getParameter(ctx, lineUserParam, true)
	if err != nil {
		return fmt.Errorf("LINE User IDの取得に失敗しました: %w", err)
	}
	c.LineUserID = lineUser

	// Google認証情報は予定の取り込みにのみ使うため、無くても続行する
	googleCredsParam := getEnvOrDefault("SSM_GOOGLE_CREDS_PARAM", "/outlook-event-linker/google-creds")
	if googleCreds, err := c.getParameter(ctx, googleCredsParam, true); err == nil {
		c.GoogleCredentials = googleCreds
	}

	return nil
}

// getParameter Parameter Storeから指定されたパラメータを取得
func (c *Config) getParameter(ctx context.Context, paramName string, withDecryption bool) (string, error) {
	input := &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(withDecryption),
	}

	result, err := c.ssmClient.GetParameter(ctx, input)
	if err != nil {
		return "", fmt.Errorf("パラメータ %s の取得に失敗しました: %w", paramName, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil || *result.Parameter.Value == "" {
		return "", fmt.Errorf("パラメータ %s が空の値です", paramName)
	}

	return *result.Parameter.Value, nil
}

func (c *Config) validate() error {
	switch c.WebProbe {
	case WebProbeNone, WebProbeHTTP:
	default:
		return fmt.Errorf("WEB_PROBEの値が不正です: %s", c.WebProbe)
	}
	if (c.LineChannelAccessToken == "") != (c.LineUserID == "") {
		return fmt.Errorf("LINE_CHANNEL_ACCESS_TOKENとLINE_USER_IDは両方設定してください")
	}
	return nil
}

// LINEEnabled LINE通知が設定されているか
func (c *Config) LINEEnabled() bool {
	return c.LineChannelAccessToken != "" && c.LineUserID != ""
}

// Location タイムゾーン設定を解決
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("タイムゾーン %s の読み込みに失敗しました: %w", c.Timezone, err)
	}
	return loc, nil
}

// Profile リンクプロファイルを解決。ファイル指定があればそちらを優先
func (c *Config) Profile() (composer.Profile, error) {
	if c.LinkProfileFile != "" {
		return composer.LoadProfileFile(c.LinkProfileFile)
	}
	return composer.LookupProfile(c.LinkProfile)
}

// getEnvOrDefault 環境変数を取得し、存在しない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
