package enhance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shouni/go-verse-kit/pkg/domain"
	"github.com/shouni/go-verse-kit/pkg/retryutil"
)

var testRequest = Request{
	Quote: domain.Quote{Text: "Miluj svého bližního jako sám sebe.", Source: "bible21"},
	Style: domain.ArtStyle{
		ID: "cubism", Name: "Cubism", Weight: 9, Shortcut: "cub",
		Characteristics: []string{"geometric forms", "multiple viewpoints"},
	},
}

// stubProvider はフォールバック検証用のスタブなのだ。
type stubProvider struct {
	name   string
	result string
	err    error
	calls  int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(ctx context.Context, req Request) (domain.Prompt, error) {
	s.calls++
	if s.err != nil {
		return domain.Prompt{}, s.err
	}
	return domain.Prompt{Text: s.result, Quote: req.Quote, Style: req.Style, Provider: s.name}, nil
}

func noRetry() retryutil.Spec {
	return retryutil.Spec{MaxAttempts: 1, Delay: 0}
}

func TestChain_Fallback(t *testing.T) {
	t.Run("プライマリ失敗でセカンダリの結果が返るのだ", func(t *testing.T) {
		primary := &stubProvider{name: "primary", err: errors.New("down")}
		secondary := &stubProvider{name: "secondary", result: "an abstract cubist scene"}

		chain, err := NewChain(noRetry(), primary, secondary)
		if err != nil {
			t.Fatalf("初期化失敗なのだ: %v", err)
		}

		p, err := chain.Generate(context.Background(), testRequest)
		if err != nil {
			t.Fatalf("フォールバックで成功するはずなのだ: %v", err)
		}
		if p.Provider != "secondary" || p.Text != "an abstract cubist scene" {
			t.Errorf("セカンダリの結果が返っていないのだ: %+v", p)
		}
	})

	t.Run("全プロバイダ失敗で ErrPromptGeneration になるのだ", func(t *testing.T) {
		chain, _ := NewChain(noRetry(),
			&stubProvider{name: "a", err: errors.New("x")},
			&stubProvider{name: "b", err: errors.New("y")},
		)
		_, err := chain.Generate(context.Background(), testRequest)
		if !errors.Is(err, domain.ErrPromptGeneration) {
			t.Errorf("致命的エラーに昇格していないのだ: %v", err)
		}
	})

	t.Run("各プロバイダはリトライ上限まで試行されるのだ", func(t *testing.T) {
		flaky := &stubProvider{name: "flaky", err: errors.New("x")}
		ok := &stubProvider{name: "ok", result: "prompt"}

		chain, _ := NewChain(retryutil.Spec{MaxAttempts: 3, Delay: 0}, flaky, ok)
		if _, err := chain.Generate(context.Background(), testRequest); err != nil {
			t.Fatalf("成功するはずなのだ: %v", err)
		}
		if flaky.calls != 3 {
			t.Errorf("試行回数が違うのだ。期待: 3, 実際: %d", flaky.calls)
		}
	})
}

func TestStaticProvider(t *testing.T) {
	t.Run("最終手段プロバイダは失敗しないのだ", func(t *testing.T) {
		p := NewStaticProvider()
		result, err := p.Generate(context.Background(), testRequest)
		if err != nil {
			t.Fatalf("失敗してはいけないのだ: %v", err)
		}
		if !strings.Contains(result.Text, testRequest.Quote.Text) {
			t.Error("定型プロンプトに聖句が含まれていないのだ")
		}
		if !strings.Contains(result.Text, "Cubism") {
			t.Error("定型プロンプトに様式名が含まれていないのだ")
		}
	})
}

func TestGroqProvider_Generate(t *testing.T) {
	t.Run("chat-completions の応答からプロンプトを取り出すのだ", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("パスが違うのだ: %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
				t.Errorf("認証ヘッダが違うのだ: %s", auth)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices":[{"message":{"content":"a fragmented golden landscape"}}]}`))
		}))
		defer srv.Close()

		p, err := NewGroqProvider(GroqConfig{APIKey: "test-key", BaseURL: srv.URL})
		if err != nil {
			t.Fatalf("初期化失敗なのだ: %v", err)
		}

		result, err := p.Generate(context.Background(), testRequest)
		if err != nil {
			t.Fatalf("生成失敗なのだ: %v", err)
		}
		if result.Text != "a fragmented golden landscape" {
			t.Errorf("プロンプトが違うのだ: %q", result.Text)
		}
		if result.Provider != "groq" {
			t.Errorf("プロバイダ名が違うのだ: %q", result.Provider)
		}
	})

	t.Run("4xx は恒久的エラーとして一度で打ち切られるのだ", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		p, _ := NewGroqProvider(GroqConfig{APIKey: "bad-key", BaseURL: srv.URL})
		chain, _ := NewChain(retryutil.Spec{MaxAttempts: 5, Delay: 0}, p)

		if _, err := chain.Generate(context.Background(), testRequest); err == nil {
			t.Fatal("失敗するはずなのだ")
		}
		if calls != 1 {
			t.Errorf("恒久的エラーを再試行しているのだ: %d 回", calls)
		}
	})

	t.Run("APIキー無しは拒否されるのだ", func(t *testing.T) {
		if _, err := NewGroqProvider(GroqConfig{}); err == nil {
			t.Error("APIキーの欠落を検出できていないのだ")
		}
	})
}
