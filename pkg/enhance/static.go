package enhance

import (
	"context"

	"github.com/shouni/go-verse-kit/internal/prompt"
	"github.com/shouni/go-verse-kit/pkg/domain"
)

// StaticProvider は、LLMプロバイダが全滅したときの最終手段です。
// ネットワークを使わず定型テンプレートからプロンプトを組み立てるため、失敗しません。
// 連鎖の末尾に置くことで、プロンプト段が画像生成を道連れに止めるのを防ぐのだ。
type StaticProvider struct{}

// NewStaticProvider は新しい StaticProvider を生成して返すのだ。
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// Name はプロバイダ識別子を返します。
func (p *StaticProvider) Name() string { return "static" }

// Generate は定型テンプレートを展開します。天候の文脈は使いません。
func (p *StaticProvider) Generate(ctx context.Context, req Request) (domain.Prompt, error) {
	text, err := prompt.BuildStaticPrompt(req.Quote, req.Style)
	if err != nil {
		return domain.Prompt{}, err
	}
	return domain.Prompt{
		Text:     text,
		Quote:    req.Quote,
		Style:    req.Style,
		Provider: p.Name(),
	}, nil
}
