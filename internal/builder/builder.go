package builder

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/shouni/go-verse-kit/internal/config"
	"github.com/shouni/go-verse-kit/internal/runner"
	"github.com/shouni/go-verse-kit/pkg/domain"
	"github.com/shouni/go-verse-kit/pkg/enhance"
	"github.com/shouni/go-verse-kit/pkg/imagegen"
	"github.com/shouni/go-verse-kit/pkg/publisher"
	"github.com/shouni/go-verse-kit/pkg/quote"
	"github.com/shouni/go-verse-kit/pkg/retryutil"
	"github.com/shouni/go-verse-kit/pkg/style"
	"github.com/shouni/go-verse-kit/pkg/weather"

	"github.com/patrickmn/go-cache"
	imagegenkit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	// プロンプト強化は創造性が欲しいので、温度は高めに設定するのだ
	const defaultGeminiTemperature = float32(0.7)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeImageSynthesizer は画像合成ステージを初期化します。
func InitializeImageSynthesizer(appCtx *AppContext) (*imagegen.Synthesizer, error) {
	imgCache := cache.New(30*time.Minute, 1*time.Hour)
	cacheTTL := 1 * time.Hour

	// 画像処理コアを生成
	core, err := imagegenkit.NewGeminiImageCore(
		appCtx.httpClient,
		imgCache,
		cacheTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗したのだ: %w", err)
	}

	imgGen, err := imagegenkit.NewGeminiGenerator(
		core,
		appCtx.aiClient,
		appCtx.Config.GeminiImageModel,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	return imagegen.NewSynthesizer(imgGen, retrySpec(appCtx.Config))
}

// BuildQuoteChain は聖句取得のフォールバックチェーンを構築します。
// プライマリは bible21.cz のスクレイプ、セカンダリは OurManna API なのだ。
func BuildQuoteChain(appCtx *AppContext) (*quote.Chain, error) {
	httpClient := newStdHTTPClient(appCtx)

	primary := quote.NewBible21Fetcher(appCtx.Config.BibleURL, appCtx.Config.QuoteClass, httpClient)
	secondary := quote.NewOurMannaFetcher(appCtx.Config.FallbackQuoteURL, httpClient)

	return quote.NewChain(retrySpec(appCtx.Config), primary, secondary)
}

// BuildEnhancerChain はプロンプト強化のプロバイダチェーンを構築します。
// PROMPT_PROVIDERS の順序を尊重し、最後に必ず静的テンプレートを置くのだ。
// どのAIプロバイダも使えなくても、静的フォールバックで処理は継続するのだよ。
func BuildEnhancerChain(appCtx *AppContext) (*enhance.Chain, error) {
	cfg := appCtx.Config
	providers := make([]enhance.Provider, 0, len(cfg.PromptProviders)+1)

	for _, name := range cfg.PromptProviders {
		switch name {
		case "gemini":
			p, err := enhance.NewGeminiProvider(appCtx.aiClient, cfg.GeminiModel)
			if err != nil {
				return nil, fmt.Errorf("Geminiプロバイダの構築に失敗しました: %w", err)
			}
			providers = append(providers, p)
		case "groq":
			if cfg.GroqAPIKey == "" {
				slog.Warn("GROQ_API_KEY が未設定なので Groq プロバイダをスキップするのだ")
				continue
			}
			p, err := enhance.NewGroqProvider(enhance.GroqConfig{
				APIKey:  cfg.GroqAPIKey,
				Model:   cfg.GroqModel,
				BaseURL: cfg.GroqBaseURL,
				Timeout: appCtx.Options.HTTPTimeout,
			})
			if err != nil {
				return nil, fmt.Errorf("Groqプロバイダの構築に失敗しました: %w", err)
			}
			providers = append(providers, p)
		default:
			return nil, fmt.Errorf("未知のプロンプトプロバイダです: %q", name)
		}
	}

	providers = append(providers, enhance.NewStaticProvider())

	return enhance.NewChain(retrySpec(cfg), providers...)
}

// BuildStyleSelector は美術様式の重み付き抽選器を構築します。
func BuildStyleSelector(appCtx *AppContext) (*style.Selector, error) {
	styles, err := loadStyles(appCtx.Options.StylesFile)
	if err != nil {
		return nil, err
	}

	seed := appCtx.Options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return style.NewSelector(styles, rand.New(rand.NewSource(seed)))
}

// BuildWeatherClient は天気情報クライアントを構築します。
// 天気は装飾なので、無効化されていてもクライアント自体は返すのだ
// （Fetch が nil を返すだけで、パイプラインは分岐不要になる）。
func BuildWeatherClient(appCtx *AppContext) *weather.Client {
	cfg := appCtx.Config

	placeID := cfg.WeatherPlaceID
	if appCtx.Options.PlaceID != "" {
		placeID = appCtx.Options.PlaceID
	}

	return weather.NewClient(weather.Config{
		Enabled: cfg.WeatherEnabled && cfg.WeatherAPIKey != "",
		APIKey:  cfg.WeatherAPIKey,
		PlaceID: placeID,
		Retry:   retrySpec(cfg),
	}, newStdHTTPClient(appCtx))
}

// BuildPublishRunner は配信先（Telegram必須、X/Twitterとアーカイブは任意）を束ねた
// Runner を構築します。
func BuildPublishRunner(ctx context.Context, appCtx *AppContext) (*runner.PublishRunner, error) {
	cfg := appCtx.Config
	publishers := make([]publisher.Publisher, 0, 3)

	tg, err := publisher.NewTelegramPublisher(publisher.TelegramConfig{
		Token:   cfg.ActiveTelegramToken(),
		ChatID:  cfg.ActiveTelegramChatID(),
		Timeout: appCtx.Options.HTTPTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("Telegramパブリッシャーの構築に失敗しました: %w", err)
	}
	publishers = append(publishers, tg)

	if cfg.TwitterEnabled {
		tw, err := publisher.NewTwitterPublisher(publisher.TwitterConfig{
			APIKey:            cfg.TwitterAPIKey,
			APISecret:         cfg.TwitterAPISecret,
			AccessToken:       cfg.TwitterAccessToken,
			AccessTokenSecret: cfg.TwitterAccessTokenSecret,
		})
		if err != nil {
			return nil, fmt.Errorf("Twitterパブリッシャーの構築に失敗しました: %w", err)
		}
		publishers = append(publishers, tw)
	} else {
		slog.InfoContext(ctx, "TWITTER=false のため X への投稿はスキップするのだ")
	}

	if appCtx.Writer != nil && appCtx.Options.OutputImageDir != "" {
		ar, err := BuildArchivePublisher(appCtx)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, ar)
	}

	return runner.NewPublishRunner(publishers, retrySpec(cfg))
}

// BuildArchivePublisher は生成結果をローカルまたは GCS へ保存するパブリッシャーを構築します。
func BuildArchivePublisher(appCtx *AppContext) (*publisher.ArchivePublisher, error) {
	if appCtx.Writer == nil {
		return nil, fmt.Errorf("OutputWriter が利用できないため、アーカイブ保存ができません")
	}

	ar, err := publisher.NewArchivePublisher(appCtx.Writer, appCtx.Options.OutputImageDir)
	if err != nil {
		return nil, fmt.Errorf("アーカイブパブリッシャーの構築に失敗しました: %w", err)
	}
	return ar, nil
}

// loadStyles は外部JSONが指定されていればそれを、なければ組み込みテーブルを読むのだ。
func loadStyles(path string) ([]domain.ArtStyle, error) {
	if path == "" {
		return style.DefaultStyles()
	}
	styles, err := domain.LoadStyles(path)
	if err != nil {
		return nil, fmt.Errorf("様式テーブル '%s' の読み込みに失敗しました: %w", path, err)
	}
	return styles, nil
}

func retrySpec(cfg *config.Config) retryutil.Spec {
	return retryutil.Spec{
		MaxAttempts: cfg.MaxRetries,
		Delay:       cfg.RetryDelay,
	}
}

// newStdHTTPClient はスクレイプや各種REST呼び出しに使う標準クライアントを返すのだ。
func newStdHTTPClient(appCtx *AppContext) *http.Client {
	timeout := appCtx.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}
