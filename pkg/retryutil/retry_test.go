package retryutil

import (
	"context"
	"errors"
	"testing"
)

func TestDo_SucceedsOnNthAttempt(t *testing.T) {
	t.Run("N回目で成功するスタブはちょうどN回呼ばれるのだ", func(t *testing.T) {
		calls := 0
		errFlaky := errors.New("一時的な失敗")

		err := Do(context.Background(), Spec{MaxAttempts: 5, Delay: 0}, func() error {
			calls++
			if calls < 3 {
				return errFlaky
			}
			return nil
		})

		if err != nil {
			t.Fatalf("成功するはずなのだ: %v", err)
		}
		if calls != 3 {
			t.Errorf("呼び出し回数が違うのだ。期待: 3, 実際: %d", calls)
		}
	})
}

func TestDo_ExhaustsMaxAttempts(t *testing.T) {
	t.Run("常に失敗するスタブはちょうど上限回だけ試行されるのだ", func(t *testing.T) {
		calls := 0
		errAlways := errors.New("いつも失敗")

		err := Do(context.Background(), Spec{MaxAttempts: 3, Delay: 0}, func() error {
			calls++
			return errAlways
		})

		if !errors.Is(err, errAlways) {
			t.Fatalf("最後のエラーが返るはずなのだ: %v", err)
		}
		if calls != 3 {
			t.Errorf("試行回数が違うのだ。期待: 3, 実際: %d", calls)
		}
	})
}

func TestDo_PermanentShortCircuits(t *testing.T) {
	t.Run("恒久的エラーは一度で打ち切られるのだ", func(t *testing.T) {
		calls := 0
		errPolicy := errors.New("コンテンツポリシー拒否")

		err := Do(context.Background(), Spec{MaxAttempts: 5, Delay: 0}, func() error {
			calls++
			return Permanent(errPolicy)
		})

		if !errors.Is(err, errPolicy) {
			t.Fatalf("元のエラーが返るはずなのだ: %v", err)
		}
		if calls != 1 {
			t.Errorf("再試行してはいけないのだ。呼び出し回数: %d", calls)
		}
	})
}

func TestDo_ContextCancel(t *testing.T) {
	t.Run("コンテキスト取り消しでリトライを中断するのだ", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0

		err := Do(ctx, Spec{MaxAttempts: 10, Delay: 0}, func() error {
			calls++
			cancel()
			return errors.New("失敗")
		})

		if err == nil {
			t.Fatal("エラーが返るはずなのだ")
		}
		if calls >= 10 {
			t.Errorf("取り消し後も試行し続けているのだ: %d", calls)
		}
	})
}

func TestDo_InvalidSpec(t *testing.T) {
	err := Do(context.Background(), Spec{MaxAttempts: 0, Delay: 0}, func() error { return nil })
	if err == nil {
		t.Error("不正な仕様を検出できていないのだ")
	}
}
