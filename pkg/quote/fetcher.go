// Package quote は「今日の聖句」を外部ソースから取得します。
// プライマリ（bible21.cz のスクレイプ）が失敗したら、
// セカンダリ（JSON API）へ順番にフォールバックするのだ。
package quote

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-verse-kit/pkg/domain"
	"github.com/shouni/go-verse-kit/pkg/retryutil"
)

// Fetcher は単一の聖句ソースへのインターフェースです。
type Fetcher interface {
	// Fetch は今日の聖句を取得します。ネットワーク障害とページ構造の
	// 解析失敗は、どちらもエラーとして報告します。
	Fetch(ctx context.Context) (domain.Quote, error)

	// Source はこのソースの識別子を返します。
	Source() string
}

// Chain は複数の Fetcher を順番に試すフォールバック連鎖です。
// 各ソースは有限回リトライされ、全ソースが尽きたときだけ失敗します。
type Chain struct {
	fetchers []Fetcher
	retry    retryutil.Spec
}

// NewChain は新しいフォールバック連鎖を生成して返すのだ。
func NewChain(retry retryutil.Spec, fetchers ...Fetcher) (*Chain, error) {
	if len(fetchers) == 0 {
		return nil, fmt.Errorf("聖句ソースが1つも指定されていません")
	}
	return &Chain{fetchers: fetchers, retry: retry}, nil
}

// Fetch はソースを順に試し、最初に成功した聖句を返します。
// すべてのソースが失敗した場合は domain.ErrSourceUnavailable を返します。
func (c *Chain) Fetch(ctx context.Context) (domain.Quote, error) {
	var lastErr error

	for _, f := range c.fetchers {
		var q domain.Quote
		err := retryutil.Do(ctx, c.retry, func() error {
			var ferr error
			q, ferr = f.Fetch(ctx)
			return ferr
		})
		if err == nil {
			slog.Info("聖句を取得したのだ", "source", f.Source(), "quote", q.Text)
			return q, nil
		}

		slog.Warn("聖句ソースが失敗したのだ。次のソースへフォールバックする",
			"source", f.Source(), "error", err)
		lastErr = err
	}

	return domain.Quote{}, fmt.Errorf("%w（最後のエラー: %v）", domain.ErrSourceUnavailable, lastErr)
}
