package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel          = "gemini-3-flash-preview"
	DefaultImageModel     = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultBibleURL       = "https://bible21.cz"
	DefaultQuoteClass     = "daily-word__quote"
	DefaultFallbackURL    = "https://beta.ourmanna.com/api/v1/get?format=json"
	DefaultGroqModel      = "llama-3.3-70b-versatile"
	DefaultPlaceID        = "kutna-hora"
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 5 * time.Second
	DefaultLocalImageDir  = "output/images" // アーカイブのデフォルト保存先なのだ
	DefaultStylesFile     = ""              // 空なら組み込みの様式テーブルを使う
	DefaultPromptProvider = "gemini,groq"
)

// Config はアプリケーション全体の環境設定（APIキーや配信先設定）を保持する構造体なのだ。
// 起動時に一度だけ構築され、以降は変更されない。各ステージへは明示的に渡すのだよ。
type Config struct {
	Production bool // true なら本番チャンネル、false ならテストチャンネルへ配信

	// --- 聖句ソース ---
	BibleURL         string
	QuoteClass       string
	FallbackQuoteURL string

	// --- AI プロバイダ ---
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	GroqAPIKey       string
	GroqModel        string
	GroqBaseURL      string
	PromptProviders  []string // 試行順のプロバイダ名リスト

	// --- Telegram ---
	TelegramToken      string
	TelegramChatID     string
	TelegramTestToken  string
	TelegramTestChatID string

	// --- X/Twitter ---
	TwitterEnabled           bool
	TwitterAPIKey            string
	TwitterAPISecret         string
	TwitterAccessToken       string
	TwitterAccessTokenSecret string

	// --- 天気 ---
	WeatherEnabled bool
	WeatherAPIKey  string
	WeatherPlaceID string

	// --- リトライ ---
	MaxRetries int
	RetryDelay time.Duration

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		Production: envBool("PRODUCTION", false),

		BibleURL:         envutil.GetEnv("BIBLE_URL", DefaultBibleURL),
		QuoteClass:       envutil.GetEnv("QUOTE_CLASS", DefaultQuoteClass),
		FallbackQuoteURL: envutil.GetEnv("FALLBACK_QUOTE_URL", DefaultFallbackURL),

		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		GroqAPIKey:       envutil.GetEnv("GROQ_API_KEY", ""),
		GroqModel:        envutil.GetEnv("GROQ_MODEL", DefaultGroqModel),
		GroqBaseURL:      envutil.GetEnv("GROQ_BASE_URL", ""),
		PromptProviders:  splitList(envutil.GetEnv("PROMPT_PROVIDERS", DefaultPromptProvider)),

		TelegramToken:      envutil.GetEnv("TELEGRAM_TOKEN", ""),
		TelegramChatID:     envutil.GetEnv("TELEGRAM_CHAT_ID", ""),
		TelegramTestToken:  envutil.GetEnv("TELEGRAM_TEST_TOKEN", ""),
		TelegramTestChatID: envutil.GetEnv("TELEGRAM_TEST_CHAT_ID", ""),

		TwitterEnabled:           envBool("TWITTER", true),
		TwitterAPIKey:            envutil.GetEnv("TWITTER_API_KEY", ""),
		TwitterAPISecret:         envutil.GetEnv("TWITTER_API_SECRET", ""),
		TwitterAccessToken:       envutil.GetEnv("TWITTER_ACCESS_TOKEN", ""),
		TwitterAccessTokenSecret: envutil.GetEnv("TWITTER_ACCESS_TOKEN_SECRET", ""),

		WeatherEnabled: envBool("WEATHER", true),
		WeatherAPIKey:  envutil.GetEnv("WEATHER_API_KEY", ""),
		WeatherPlaceID: envutil.GetEnv("WEATHER_PLACE_ID", DefaultPlaceID),

		MaxRetries: envInt("MAX_RETRIES", DefaultMaxRetries),
		RetryDelay: time.Duration(envInt("RETRY_DELAY", int(DefaultRetryDelay/time.Second))) * time.Second,
	}
	return cfg
}

// ActiveTelegramToken は配信モードに応じた Telegram トークンを返すのだ。
func (c *Config) ActiveTelegramToken() string {
	if c.Production {
		return c.TelegramToken
	}
	return c.TelegramTestToken
}

// ActiveTelegramChatID は配信モードに応じたチャットIDを返すのだ。
func (c *Config) ActiveTelegramChatID() string {
	if c.Production {
		return c.TelegramChatID
	}
	return c.TelegramTestChatID
}

// Validate は配信に必要な資格情報が揃っているかを検証するのだ。
func (c *Config) Validate() error {
	if c.ActiveTelegramToken() == "" {
		return fmt.Errorf("telegram トークンが未設定です (production=%v)", c.Production)
	}
	if c.ActiveTelegramChatID() == "" {
		return fmt.Errorf("telegram チャットIDが未設定です (production=%v)", c.Production)
	}

	if c.TwitterEnabled {
		if c.TwitterAPIKey == "" || c.TwitterAPISecret == "" ||
			c.TwitterAccessToken == "" || c.TwitterAccessTokenSecret == "" {
			return fmt.Errorf("twitter が有効なのに OAuth1 資格情報が不足しています")
		}
	}

	if c.MaxRetries < 1 {
		return fmt.Errorf("MAX_RETRIES は1以上にしてほしいのだ: %d", c.MaxRetries)
	}

	return nil
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	QuoteText  string // --quote-text: 聖句の取得をスキップして直接指定
	QuoteFile  string // --quote-file: 聖句をファイルから読み込む
	StylesFile string // --styles-file: 様式テーブルJSONのパス

	// 生成結果の出力設定
	OutputImageDir string // --output-image-dir

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
	Seed        int64         // --seed: 様式抽選の乱数シード（0なら時刻由来）
	PlaceID     string        // --place-id: 天気取得地点の上書き
}

func envBool(key string, def bool) bool {
	raw := strings.ToLower(strings.TrimSpace(envutil.GetEnv(key, strconv.FormatBool(def))))
	switch raw {
	case "false", "0", "no", "n":
		return false
	case "true", "1", "yes", "y":
		return true
	default:
		return def
	}
}

func envInt(key string, def int) int {
	raw := envutil.GetEnv(key, strconv.Itoa(def))
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
