package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-verse-kit/pkg/domain"
	"github.com/shouni/go-verse-kit/pkg/publisher"
	"github.com/shouni/go-verse-kit/pkg/retryutil"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// 各配信先へのリクエスト間隔なのだ。Burst 2 により開始直後は2件まで同時に走れる。
const publishInterval = 500 * time.Millisecond

// SinkResult は配信先ごとの結果なのだ。
type SinkResult struct {
	Name string
	Err  error
}

// PublishRunner は複数の配信先へ並列に投稿する実体。
// 配信先同士は独立していて、一方の失敗が他方を巻き込むことはないのだ。
type PublishRunner struct {
	publishers []publisher.Publisher
	retry      retryutil.Spec
}

// NewPublishRunner は PublishRunner の新しいインスタンスを生成して返す。
func NewPublishRunner(publishers []publisher.Publisher, retry retryutil.Spec) (*PublishRunner, error) {
	if len(publishers) == 0 {
		return nil, fmt.Errorf("配信先が1つも登録されていません")
	}
	return &PublishRunner{publishers: publishers, retry: retry}, nil
}

// Sinks は登録されている配信先の名前を登録順に返すのだ。
func (pr *PublishRunner) Sinks() []string {
	names := make([]string, len(pr.publishers))
	for i, pub := range pr.publishers {
		names[i] = pub.Name()
	}
	return names
}

// Run はすべての配信先へ画像とキャプションを投稿するのだ。
// 配信先ごとにリトライし、失敗はログに残して続行する。
// 全配信先が失敗したときだけエラーを返すのだよ。
func (pr *PublishRunner) Run(ctx context.Context, img *imagedom.ImageResponse, caps domain.Captions) ([]SinkResult, error) {
	results := make([]SinkResult, len(pr.publishers))
	eg, egCtx := errgroup.WithContext(ctx)

	limiter := rate.NewLimiter(rate.Every(publishInterval), 2)
	slog.Info("配信を開始するのだ", "sinks", len(pr.publishers))

	for i, pub := range pr.publishers {
		i, pub := i, pub // ゴルーチンのクロージャ対策なのだ

		eg.Go(func() error {
			if err := limiter.Wait(egCtx); err != nil {
				results[i] = SinkResult{Name: pub.Name(), Err: err}
				return nil
			}

			err := retryutil.Do(egCtx, pr.retry, func() error {
				return pub.Publish(egCtx, img, caps)
			})
			if err != nil {
				slog.Error("配信に失敗したのだ", "sink", pub.Name(), "error", err)
				results[i] = SinkResult{Name: pub.Name(), Err: fmt.Errorf("%w: %s: %w", domain.ErrPublish, pub.Name(), err)}
				return nil
			}

			slog.Info("配信に成功したのだ", "sink", pub.Name())
			results[i] = SinkResult{Name: pub.Name()}
			return nil
		})
	}

	// すべての配信が完了するのを待つのだ
	if err := eg.Wait(); err != nil {
		return results, err
	}

	succeeded := 0
	for _, r := range results {
		if r.Err == nil {
			succeeded++
		}
	}
	if succeeded == 0 {
		return results, fmt.Errorf("%w: すべての配信先への投稿に失敗しました", domain.ErrPublish)
	}

	slog.Info("配信が完了したのだ", "succeeded", succeeded, "total", len(results))
	return results, nil
}
