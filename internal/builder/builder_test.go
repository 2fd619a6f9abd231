package builder

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/shouni/go-verse-kit/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		TelegramTestToken:  "tok",
		TelegramTestChatID: "chat",
		MaxRetries:         3,
		RetryDelay:         time.Second,
		PromptProviders:    []string{"gemini", "groq"},
		GroqAPIKey:         "groq-key",
	}
}

func TestBuildPublishRunner(t *testing.T) {
	t.Run("TWITTER有効時はtelegramとtwitterが登録されること", func(t *testing.T) {
		cfg := testConfig()
		cfg.TwitterEnabled = true
		cfg.TwitterAPIKey = "k"
		cfg.TwitterAPISecret = "s"
		cfg.TwitterAccessToken = "at"
		cfg.TwitterAccessTokenSecret = "ats"
		appCtx := NewAppContext(cfg, nil, nil, nil)

		pr, err := BuildPublishRunner(context.Background(), &appCtx)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}

		sinks := pr.Sinks()
		if !slices.Contains(sinks, "telegram") || !slices.Contains(sinks, "twitter") {
			t.Errorf("配信先が不足している: %v", sinks)
		}
	})

	t.Run("TWITTER無効時はtwitterが登録されないこと", func(t *testing.T) {
		cfg := testConfig()
		cfg.TwitterEnabled = false
		appCtx := NewAppContext(cfg, nil, nil, nil)

		pr, err := BuildPublishRunner(context.Background(), &appCtx)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}

		sinks := pr.Sinks()
		if slices.Contains(sinks, "twitter") {
			t.Errorf("無効化された twitter が登録されている: %v", sinks)
		}
		if !slices.Contains(sinks, "telegram") {
			t.Errorf("telegram が登録されていない: %v", sinks)
		}
	})

	t.Run("Writerが無いときはアーカイブが登録されないこと", func(t *testing.T) {
		cfg := testConfig()
		appCtx := NewAppContext(cfg, nil, nil, nil)

		pr, err := BuildPublishRunner(context.Background(), &appCtx)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}

		if slices.Contains(pr.Sinks(), "archive") {
			t.Errorf("Writer が無いのに archive が登録されている: %v", pr.Sinks())
		}
	})
}

func TestBuildStyleSelector(t *testing.T) {
	t.Run("組み込みテーブルで抽選器が構築できること", func(t *testing.T) {
		cfg := testConfig()
		cfg.Options.Seed = 42
		appCtx := NewAppContext(cfg, nil, nil, nil)

		selector, err := BuildStyleSelector(&appCtx)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got := selector.Select(); got.ID == "" {
			t.Error("抽選結果の様式が空になっている")
		}
	})

	t.Run("存在しない様式ファイルはエラーになること", func(t *testing.T) {
		cfg := testConfig()
		cfg.Options.StylesFile = "testdata/no_such_file.json"
		appCtx := NewAppContext(cfg, nil, nil, nil)

		if _, err := BuildStyleSelector(&appCtx); err == nil {
			t.Fatal("エラーが返るべき")
		}
	})
}

func TestBuildEnhancerChain(t *testing.T) {
	t.Run("未知のプロバイダ名は拒否されること", func(t *testing.T) {
		cfg := testConfig()
		cfg.PromptProviders = []string{"unknown-llm"}
		appCtx := NewAppContext(cfg, nil, nil, nil)

		if _, err := BuildEnhancerChain(&appCtx); err == nil {
			t.Fatal("エラーが返るべき")
		}
	})

	t.Run("GroqキーなしでもStaticフォールバックで構築できること", func(t *testing.T) {
		cfg := testConfig()
		cfg.PromptProviders = []string{"groq"}
		cfg.GroqAPIKey = ""
		appCtx := NewAppContext(cfg, nil, nil, nil)

		if _, err := BuildEnhancerChain(&appCtx); err != nil {
			t.Fatalf("Static フォールバックがあるので構築は成功するはず: %v", err)
		}
	})
}
