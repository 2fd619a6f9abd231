// Package imagegen は、強化済みプロンプトから画像を合成します。
// 実際の生成は gemini-image-kit のアダプターに委ね、
// ここでは一時的障害のリトライと恒久的失敗の見極めだけを担うのだ。
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-verse-kit/pkg/domain"
	"github.com/shouni/go-verse-kit/pkg/retryutil"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// デフォルトのアスペクト比。元の運用は 1024x768 の横長だったのだ。
const defaultAspectRatio = "4:3"

// ネガティブプロンプト: 文字、写真調、中央寄り構図を徹底的に排除するのだ
const negativePrompt = "text, letters, words, watermark, signature, photographic look, photorealistic, 3d render, centered composition, low quality, distorted"

// PanelGenerator は画像生成アダプターへの狭いインターフェースです。
// gemini-image-kit の ImageAdapter がこれを満たします。
type PanelGenerator interface {
	GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}

// Synthesizer はプロンプト1件から画像1枚を合成します。
type Synthesizer struct {
	adapter     PanelGenerator
	retry       retryutil.Spec
	aspectRatio string
}

// NewSynthesizer は新しい Synthesizer を生成して返すのだ。
func NewSynthesizer(adapter PanelGenerator, retry retryutil.Spec) (*Synthesizer, error) {
	if adapter == nil {
		return nil, fmt.Errorf("画像生成アダプターは必須です")
	}
	return &Synthesizer{
		adapter:     adapter,
		retry:       retry,
		aspectRatio: defaultAspectRatio,
	}, nil
}

// Synthesize はプロンプトを画像にします。
// レート制限やタイムアウトは上限回数までリトライし、
// コンテンツポリシー拒否のような恒久的失敗は即座に打ち切ります。
// 失敗は domain.ErrImageGeneration に昇格するのだ。
func (s *Synthesizer) Synthesize(ctx context.Context, p domain.Prompt) (*imagedom.ImageResponse, error) {
	var resp *imagedom.ImageResponse

	err := retryutil.Do(ctx, s.retry, func() error {
		var gerr error
		resp, gerr = s.adapter.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
			Prompt:         p.Text,
			NegativePrompt: negativePrompt,
			AspectRatio:    s.aspectRatio,
		})
		if gerr != nil {
			if isPermanent(ctx, gerr) {
				return retryutil.Permanent(gerr)
			}
			return gerr
		}
		if resp == nil || len(resp.Data) == 0 {
			return fmt.Errorf("画像データが空でした")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageGeneration, err)
	}

	slog.Info("画像を合成したのだ",
		"style", p.Style.Name, "provider", p.Provider,
		"mime", resp.MimeType, "bytes", len(resp.Data))
	return resp, nil
}

// isPermanent は再試行しても無駄な失敗かどうかを判定するのだ。
// 安全性ブロックとコンテンツポリシー拒否は何度送っても同じ結果になる。
func isPermanent(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"safety", "blocked", "policy", "prohibited"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
