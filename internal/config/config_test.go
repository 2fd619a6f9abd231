package config

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("デフォルト値が適用されること", func(t *testing.T) {
		cfg := LoadConfig()

		if cfg.BibleURL != DefaultBibleURL {
			t.Errorf("BibleURL: got %q, want %q", cfg.BibleURL, DefaultBibleURL)
		}
		if cfg.MaxRetries != DefaultMaxRetries {
			t.Errorf("MaxRetries: got %d, want %d", cfg.MaxRetries, DefaultMaxRetries)
		}
		if cfg.RetryDelay != DefaultRetryDelay {
			t.Errorf("RetryDelay: got %v, want %v", cfg.RetryDelay, DefaultRetryDelay)
		}
		if cfg.Production {
			t.Error("PRODUCTION のデフォルトは false のはず")
		}
		want := []string{"gemini", "groq"}
		if len(cfg.PromptProviders) != len(want) {
			t.Fatalf("PromptProviders: got %v", cfg.PromptProviders)
		}
		for i, p := range want {
			if cfg.PromptProviders[i] != p {
				t.Errorf("PromptProviders[%d]: got %q, want %q", i, cfg.PromptProviders[i], p)
			}
		}
	})

	t.Run("環境変数で上書きできること", func(t *testing.T) {
		t.Setenv("PRODUCTION", "true")
		t.Setenv("MAX_RETRIES", "5")
		t.Setenv("RETRY_DELAY", "2")
		t.Setenv("PROMPT_PROVIDERS", "groq, gemini")
		t.Setenv("WEATHER", "false")

		cfg := LoadConfig()

		if !cfg.Production {
			t.Error("PRODUCTION=true が反映されていない")
		}
		if cfg.MaxRetries != 5 {
			t.Errorf("MaxRetries: got %d, want 5", cfg.MaxRetries)
		}
		if cfg.RetryDelay != 2*time.Second {
			t.Errorf("RetryDelay: got %v, want 2s", cfg.RetryDelay)
		}
		if cfg.WeatherEnabled {
			t.Error("WEATHER=false が反映されていない")
		}
		if cfg.PromptProviders[0] != "groq" || cfg.PromptProviders[1] != "gemini" {
			t.Errorf("PromptProviders の順序が保持されていない: %v", cfg.PromptProviders)
		}
	})

	t.Run("不正な数値はデフォルトにフォールバックすること", func(t *testing.T) {
		t.Setenv("MAX_RETRIES", "abc")
		cfg := LoadConfig()
		if cfg.MaxRetries != DefaultMaxRetries {
			t.Errorf("MaxRetries: got %d, want %d", cfg.MaxRetries, DefaultMaxRetries)
		}
	})
}

func TestConfig_ActiveTelegram(t *testing.T) {
	cfg := &Config{
		TelegramToken:      "prod-token",
		TelegramChatID:     "prod-chat",
		TelegramTestToken:  "test-token",
		TelegramTestChatID: "test-chat",
	}

	t.Run("テストモードではテスト用資格情報を返すこと", func(t *testing.T) {
		cfg.Production = false
		if got := cfg.ActiveTelegramToken(); got != "test-token" {
			t.Errorf("got %q, want test-token", got)
		}
		if got := cfg.ActiveTelegramChatID(); got != "test-chat" {
			t.Errorf("got %q, want test-chat", got)
		}
	})

	t.Run("本番モードでは本番用資格情報を返すこと", func(t *testing.T) {
		cfg.Production = true
		if got := cfg.ActiveTelegramToken(); got != "prod-token" {
			t.Errorf("got %q, want prod-token", got)
		}
		if got := cfg.ActiveTelegramChatID(); got != "prod-chat" {
			t.Errorf("got %q, want prod-chat", got)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			TelegramTestToken:  "tok",
			TelegramTestChatID: "chat",
			MaxRetries:         3,
		}
	}

	t.Run("正常な設定は検証を通ること", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
	})

	t.Run("Telegramトークン欠落はエラーになること", func(t *testing.T) {
		cfg := valid()
		cfg.TelegramTestToken = ""
		if err := cfg.Validate(); err == nil {
			t.Fatal("エラーが返るべき")
		}
	})

	t.Run("Twitter有効時の資格情報不足はエラーになること", func(t *testing.T) {
		cfg := valid()
		cfg.TwitterEnabled = true
		cfg.TwitterAPIKey = "only-key"
		if err := cfg.Validate(); err == nil {
			t.Fatal("エラーが返るべき")
		}
	})

	t.Run("MAX_RETRIESが0以下はエラーになること", func(t *testing.T) {
		cfg := valid()
		cfg.MaxRetries = 0
		if err := cfg.Validate(); err == nil {
			t.Fatal("エラーが返るべき")
		}
	})
}
