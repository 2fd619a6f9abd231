// Package retryutil は、外部API呼び出しを包む有限回・固定間隔のリトライを提供します。
// バックオフは指数ではなく一定間隔なのだ。
package retryutil

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Spec はリトライの挙動を定義します。
type Spec struct {
	MaxAttempts int           // 総試行回数の上限（初回呼び出しを含む）
	Delay       time.Duration // 各試行の間に置く固定の待ち時間
}

// DefaultSpec は元の運用既定（3回・5秒間隔）を返すのだ。
func DefaultSpec() Spec {
	return Spec{MaxAttempts: 3, Delay: 5 * time.Second}
}

// Do は op を最大 MaxAttempts 回まで実行します。
// op が nil を返せば即座に成功、Permanent で包まれたエラーを返せば
// 残り試行を放棄してそのエラーを返します。context の取り消しにも従います。
func Do(ctx context.Context, spec Spec, op func() error) error {
	if spec.MaxAttempts < 1 {
		return fmt.Errorf("リトライ仕様が不正です: MaxAttempts=%d", spec.MaxAttempts)
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(spec.Delay), uint64(spec.MaxAttempts-1)),
		ctx,
	)
	return backoff.Retry(backoff.Operation(op), b)
}

// Permanent は「再試行しても無駄なエラー」を示す印を付けます。
// コンテンツポリシー拒否や 4xx 系の恒久的失敗に使うのだ。
func Permanent(err error) error {
	return backoff.Permanent(err)
}
