// Package weather は Meteosource から現在の天候を取得します。
// 天気はキャプションの飾りと画像プロンプトの文脈にしか使わないので、
// どんな失敗もパイプラインを止めてはならないのだ。
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-verse-kit/pkg/domain"
	"github.com/shouni/go-verse-kit/pkg/retryutil"
)

const (
	defaultBaseURL = "https://www.meteosource.com/api/v1/free/point"

	// プロンプト段とキャプション段が同じスナップショットを共有するための
	// ラン内キャッシュ。1回の実行で天気APIを2回叩かないのだ。
	cacheKey        = "snapshot"
	cacheExpiration = 30 * time.Minute
	cacheCleanup    = 1 * time.Hour
)

// Config は天気クライアントの設定です。
type Config struct {
	Enabled bool
	APIKey  string
	PlaceID string
	BaseURL string // テスト用の差し替え口。省略時は Meteosource 本番。
	Retry   retryutil.Spec
}

// Client は Meteosource API のクライアントです。
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      *cache.Cache
}

// NewClient は新しい天気クライアントを生成して返すのだ。
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		cache:      cache.New(cacheExpiration, cacheCleanup),
	}
}

// meteosourceResponse は /free/point の daily セクションのレスポンス形式です。
type meteosourceResponse struct {
	Daily struct {
		Data []struct {
			Weather string `json:"weather"`
			Summary string `json:"summary"`
			AllDay  struct {
				Temperature    float64 `json:"temperature"`
				TemperatureMin float64 `json:"temperature_min"`
				TemperatureMax float64 `json:"temperature_max"`
				Wind           struct {
					Speed float64 `json:"speed"`
					Dir   string  `json:"dir"`
				} `json:"wind"`
			} `json:"all_day"`
		} `json:"data"`
	} `json:"daily"`
}

// Fetch は今日の天候スナップショットを返します。
// 機能が無効、または取得に失敗した場合は nil を返し、決してエラーでランを止めません。
func (c *Client) Fetch(ctx context.Context) *domain.WeatherSnapshot {
	if !c.cfg.Enabled {
		slog.Info("天気の取得は無効化されているのだ")
		return nil
	}

	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*domain.WeatherSnapshot)
	}

	var snapshot *domain.WeatherSnapshot
	err := retryutil.Do(ctx, c.cfg.Retry, func() error {
		var ferr error
		snapshot, ferr = c.fetchOnce(ctx)
		return ferr
	})
	if err != nil {
		slog.Warn("天気の取得に失敗したのだ。天気なしで続行する", "place_id", c.cfg.PlaceID, "error", err)
		return nil
	}

	c.cache.Set(cacheKey, snapshot, cache.DefaultExpiration)
	slog.Info("天気を取得したのだ", "place_id", c.cfg.PlaceID, "code", snapshot.Code, "icon", snapshot.Icon)
	return snapshot
}

// PromptContext は、画像プロンプトに添える天候の文脈文字列を返します。
// スナップショットが無ければ空文字列なのだ。
func (c *Client) PromptContext(ctx context.Context) string {
	s := c.Fetch(ctx)
	if s == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily weather forecast: %s, %s\n", s.Code, s.Summary)
	fmt.Fprintf(&b, "Temperature: %.1f°C (min: %.1f°C, max: %.1f°C)", s.Temperature, s.TempMin, s.TempMax)
	return b.String()
}

func (c *Client) fetchOnce(ctx context.Context) (*domain.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("place_id", c.cfg.PlaceID)
	params.Set("sections", "daily")
	params.Set("timezone", "UTC")
	params.Set("language", "en")
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meteosource の取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("meteosource が異常ステータスを返しました: %s", resp.Status)
	}

	var body meteosourceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("meteosource レスポンスの解析に失敗しました: %w", err)
	}
	if len(body.Daily.Data) == 0 {
		return nil, fmt.Errorf("meteosource レスポンスに daily データがありませんでした")
	}

	today := body.Daily.Data[0]
	return &domain.WeatherSnapshot{
		Code:        today.Weather,
		Icon:        IconFor(today.Weather),
		Summary:     today.Summary,
		Temperature: today.AllDay.Temperature,
		TempMin:     today.AllDay.TemperatureMin,
		TempMax:     today.AllDay.TemperatureMax,
	}, nil
}
