package enhance

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/go-verse-kit/internal/prompt"
	"github.com/shouni/go-verse-kit/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// GeminiProvider は Gemini API を使うプライマリのプロンプト生成プロバイダです。
type GeminiProvider struct {
	client gemini.GenerativeModel
	model  string
}

// NewGeminiProvider は新しい GeminiProvider を生成して返すのだ。
func NewGeminiProvider(client gemini.GenerativeModel, model string) (*GeminiProvider, error) {
	if client == nil {
		return nil, fmt.Errorf("gemini クライアントは必須です")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini モデル名は必須です")
	}
	return &GeminiProvider{client: client, model: model}, nil
}

// Name はプロバイダ識別子を返します。
func (p *GeminiProvider) Name() string { return "gemini" }

// Generate はシステム指示とユーザー指示を結合して Gemini へ送り、
// 応答テキストをそのまま画像生成プロンプトとして返すのだ。
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (domain.Prompt, error) {
	systemPrompt, err := prompt.BuildSystemPrompt(req.Style)
	if err != nil {
		return domain.Prompt{}, err
	}
	userPrompt := prompt.BuildUserPrompt(req.Quote, req.WeatherContext)

	fullPrompt := systemPrompt + "\n\n" + userPrompt
	resp, err := p.client.GenerateContent(ctx, fullPrompt, p.model)
	if err != nil {
		return domain.Prompt{}, fmt.Errorf("gemini の呼び出しに失敗しました: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return domain.Prompt{}, fmt.Errorf("gemini の応答が空でした")
	}

	return domain.Prompt{
		Text:     text,
		Quote:    req.Quote,
		Style:    req.Style,
		Provider: p.Name(),
	}, nil
}
