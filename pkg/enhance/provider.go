// Package enhance は、聖句と美術様式から画像生成プロンプトを作るLLM呼び出しを提供します。
// 複数のプロバイダをひとつのインターフェースの背後に並べ、
// 先頭から順に試すフォールバック連鎖として実行するのだ。
package enhance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-verse-kit/pkg/domain"
	"github.com/shouni/go-verse-kit/pkg/retryutil"
)

// Request はプロンプト生成への入力一式です。
// WeatherContext は任意で、あれば指示文に文脈として添えられます。
type Request struct {
	Quote          domain.Quote
	Style          domain.ArtStyle
	WeatherContext string
}

// Provider は単一のテキスト生成プロバイダへのインターフェースです。
type Provider interface {
	// Name はプロバイダの識別子を返します。
	Name() string

	// Generate は聖句と様式から画像生成プロンプトを作ります。
	Generate(ctx context.Context, req Request) (domain.Prompt, error)
}

// Chain は複数プロバイダのフォールバック連鎖です。
// 各プロバイダは有限回リトライされ、全滅したときだけ失敗します。
type Chain struct {
	providers []Provider
	retry     retryutil.Spec
}

// NewChain は新しいフォールバック連鎖を生成して返すのだ。
func NewChain(retry retryutil.Spec, providers ...Provider) (*Chain, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("プロンプト生成プロバイダが1つも指定されていません")
	}
	return &Chain{providers: providers, retry: retry}, nil
}

// Generate はプロバイダを順に試し、最初に得られたプロンプトを返します。
// すべて失敗した場合は domain.ErrPromptGeneration を返します。
func (c *Chain) Generate(ctx context.Context, req Request) (domain.Prompt, error) {
	var lastErr error

	for _, p := range c.providers {
		var result domain.Prompt
		err := retryutil.Do(ctx, c.retry, func() error {
			var gerr error
			result, gerr = p.Generate(ctx, req)
			return gerr
		})
		if err == nil {
			slog.Info("画像プロンプトを生成したのだ", "provider", p.Name(), "style", req.Style.Name)
			return result, nil
		}

		slog.Warn("プロバイダが失敗したのだ。次のプロバイダへフォールバックする",
			"provider", p.Name(), "error", err)
		lastErr = err
	}

	return domain.Prompt{}, fmt.Errorf("%w（最後のエラー: %v）", domain.ErrPromptGeneration, lastErr)
}
