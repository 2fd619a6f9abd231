package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shouni/go-verse-kit/internal/builder"
	"github.com/shouni/go-verse-kit/internal/config"
	"github.com/shouni/go-verse-kit/pkg/caption"
	"github.com/shouni/go-verse-kit/pkg/domain"
	"github.com/shouni/go-verse-kit/pkg/enhance"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// Execute は「今日の聖句」画像の生成から配信までを一気通貫で実行するのだ。
// 聖句取得 → 様式抽選 → 天気取得 → プロンプト強化 → 画像生成 → キャプション合成 → 配信、の順なのだよ。
func Execute(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("設定の検証に失敗しました: %w", err)
	}

	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Phase 1: 聖句の取得 ---
	q, err := runQuoteStep(ctx, appCtx)
	if err != nil {
		return err
	}

	// --- Phase 2: 様式抽選・プロンプト強化・画像生成 ---
	img, selected, weatherSnap, err := runImageStep(ctx, appCtx, q)
	if err != nil {
		return err
	}

	// --- Phase 3: キャプション合成と配信 ---
	caps := caption.Compose(q, selected, weatherSnap, time.Now())
	if err := runPublishStep(ctx, appCtx, img, caps); err != nil {
		return err
	}

	slog.Info("今日の聖句の配信が完了したのだ！", "style", selected.Name)
	return nil
}

// ExecuteQuoteOnly は聖句の取得だけを行い、結果を標準出力へ表示するのだ。
// スクレイプ対象のHTML構造が変わっていないかの確認に便利なのだよ。
func ExecuteQuoteOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupLocalAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	q, err := runQuoteStep(ctx, appCtx)
	if err != nil {
		return err
	}

	fmt.Println(q.Text)
	return nil
}

// ExecuteImageOnly は配信をスキップして、画像生成とアーカイブ保存までを実行するのだ。
// 配信前に生成結果を目で確かめたいときに使うのだよ。
func ExecuteImageOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	q, err := runQuoteStep(ctx, appCtx)
	if err != nil {
		return err
	}

	img, selected, weatherSnap, err := runImageStep(ctx, appCtx, q)
	if err != nil {
		return err
	}

	caps := caption.Compose(q, selected, weatherSnap, time.Now())
	if err := runArchiveStep(ctx, appCtx, img, caps); err != nil {
		return err
	}

	slog.Info("画像生成とアーカイブ保存が完了したのだ！", "style", selected.Name)
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// 初期化中にエラーが発生した場合は、AppContext のポインタとエラーを返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(httpTimeout(cfg))
	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		slog.WarnContext(ctx, "OutputWriterの取得に失敗しました。アーカイブ保存が制限される可能性があります", "error", err)
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, writer)
	return &appCtx, nil
}

// setupLocalAppContext はAIやGCSを必要としないコマンド用の軽量版セットアップなのだ。
func setupLocalAppContext(_ context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(httpTimeout(cfg))
	appCtx := builder.NewAppContext(cfg, httpClient, nil, nil)
	return &appCtx, nil
}

func httpTimeout(cfg *config.Config) time.Duration {
	if cfg.Options.HTTPTimeout > 0 {
		return cfg.Options.HTTPTimeout
	}
	return config.DefaultHTTPTimeout
}

// runQuoteStep は聖句を取得するのだ。--quote-text 指定時は取得をスキップする。
func runQuoteStep(ctx context.Context, appCtx *builder.AppContext) (domain.Quote, error) {
	if direct := strings.TrimSpace(appCtx.Options.QuoteText); direct != "" {
		slog.Info("聖句が直接指定されたので取得をスキップするのだ")
		return domain.Quote{Text: direct, Source: "manual"}, nil
	}

	if path := appCtx.Options.QuoteFile; path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return domain.Quote{}, fmt.Errorf("聖句ファイル '%s' の読み込みに失敗しました: %w", path, err)
		}
		text := strings.TrimSpace(string(raw))
		if text == "" {
			return domain.Quote{}, fmt.Errorf("聖句ファイル '%s' が空です", path)
		}
		slog.Info("聖句をファイルから読み込んだのだ", "path", path)
		return domain.Quote{Text: text, Source: "file"}, nil
	}

	slog.Info("Phase 1: 聖句の取得を開始するのだ...")
	chain, err := builder.BuildQuoteChain(appCtx)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("聖句チェーンの構築に失敗したのだ: %w", err)
	}

	q, err := chain.Fetch(ctx)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("聖句の取得に失敗したのだ: %w", err)
	}

	slog.Info("聖句を取得したのだ", "source", q.Source, "length", len(q.Text))
	return q, nil
}

// runImageStep は様式抽選からプロンプト強化、画像生成までを実行するのだ。
func runImageStep(ctx context.Context, appCtx *builder.AppContext, q domain.Quote) (*imagedom.ImageResponse, domain.ArtStyle, *domain.WeatherSnapshot, error) {
	slog.Info("Phase 2: 画像生成を開始するのだ...")

	selector, err := builder.BuildStyleSelector(appCtx)
	if err != nil {
		return nil, domain.ArtStyle{}, nil, fmt.Errorf("様式抽選器の構築に失敗したのだ: %w", err)
	}
	selected := selector.Select()
	slog.Info("美術様式を抽選したのだ", "style", selected.Name, "shortcut", selected.Shortcut)

	// 天気は装飾なので、取得失敗でもパイプラインは止めないのだ
	weatherClient := builder.BuildWeatherClient(appCtx)
	weatherSnap := weatherClient.Fetch(ctx)
	weatherContext := weatherClient.PromptContext(ctx)

	enhancer, err := builder.BuildEnhancerChain(appCtx)
	if err != nil {
		return nil, domain.ArtStyle{}, nil, fmt.Errorf("プロンプト強化チェーンの構築に失敗したのだ: %w", err)
	}

	p, err := enhancer.Generate(ctx, enhance.Request{
		Quote:          q,
		Style:          selected,
		WeatherContext: weatherContext,
	})
	if err != nil {
		return nil, domain.ArtStyle{}, nil, fmt.Errorf("プロンプト生成に失敗したのだ: %w", err)
	}
	slog.Info("画像プロンプトが完成したのだ", "provider", p.Provider)

	synth, err := builder.InitializeImageSynthesizer(appCtx)
	if err != nil {
		return nil, domain.ArtStyle{}, nil, fmt.Errorf("画像合成ステージの構築に失敗したのだ: %w", err)
	}

	img, err := synth.Synthesize(ctx, p)
	if err != nil {
		return nil, domain.ArtStyle{}, nil, fmt.Errorf("画像生成に失敗したのだ: %w", err)
	}

	return img, selected, weatherSnap, nil
}

// runPublishStep は PublishRunner を使って各配信先へ投稿するのだ
func runPublishStep(ctx context.Context, appCtx *builder.AppContext, img *imagedom.ImageResponse, caps domain.Captions) error {
	slog.Info("Phase 3: 配信処理を開始するのだ...")
	publishRunner, err := builder.BuildPublishRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}

	if _, err := publishRunner.Run(ctx, img, caps); err != nil {
		return fmt.Errorf("配信処理に失敗したのだ: %w", err)
	}
	return nil
}

// runArchiveStep は配信をせず、アーカイブ保存だけを行うのだ。
func runArchiveStep(ctx context.Context, appCtx *builder.AppContext, img *imagedom.ImageResponse, caps domain.Captions) error {
	archiver, err := builder.BuildArchivePublisher(appCtx)
	if err != nil {
		return fmt.Errorf("アーカイブパブリッシャーの構築に失敗したのだ: %w", err)
	}

	if err := archiver.Publish(ctx, img, caps); err != nil {
		return fmt.Errorf("アーカイブ保存に失敗したのだ: %w", err)
	}
	return nil
}
