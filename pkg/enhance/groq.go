package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/go-verse-kit/internal/prompt"
	"github.com/shouni/go-verse-kit/pkg/domain"
	"github.com/shouni/go-verse-kit/pkg/retryutil"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.3-70b-versatile"

	groqTemperature = 0.7
	groqMaxTokens   = 500
)

// GroqConfig は GroqProvider の接続設定です。
type GroqConfig struct {
	APIKey  string
	Model   string        // 省略時: llama-3.3-70b-versatile
	BaseURL string        // 省略時: Groq の OpenAI 互換エンドポイント
	Timeout time.Duration // 省略時: 30s
}

// GroqProvider は Groq の OpenAI 互換 chat-completions API を呼ぶ
// セカンダリのプロンプト生成プロバイダです。
type GroqProvider struct {
	cfg        GroqConfig
	httpClient *http.Client
}

// NewGroqProvider は新しい GroqProvider を生成して返すのだ。
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY は必須です")
	}
	if cfg.Model == "" {
		cfg.Model = defaultGroqModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGroqBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &GroqProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name はプロバイダ識別子を返します。
func (p *GroqProvider) Name() string { return "groq" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Messages    []chatMessage `json:"messages"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate は system/user の2メッセージで chat-completions を呼び出します。
// 429 と 5xx は一時的エラーとして再試行対象、それ以外の 4xx は恒久的エラーなのだ。
func (p *GroqProvider) Generate(ctx context.Context, req Request) (domain.Prompt, error) {
	systemPrompt, err := prompt.BuildSystemPrompt(req.Style)
	if err != nil {
		return domain.Prompt{}, retryutil.Permanent(err)
	}

	body := chatCompletionRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt.BuildUserPrompt(req.Quote, req.WeatherContext)},
		},
		Model:       p.cfg.Model,
		Temperature: groqTemperature,
		MaxTokens:   groqMaxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return domain.Prompt{}, retryutil.Permanent(fmt.Errorf("リクエストの生成に失敗しました: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return domain.Prompt{}, retryutil.Permanent(fmt.Errorf("リクエストの作成に失敗しました: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return domain.Prompt{}, fmt.Errorf("groq の呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("groq が異常ステータスを返しました: %s", resp.Status)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return domain.Prompt{}, statusErr
		}
		return domain.Prompt{}, retryutil.Permanent(statusErr)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return domain.Prompt{}, fmt.Errorf("groq レスポンスの解析に失敗しました: %w", err)
	}
	if len(completion.Choices) == 0 {
		return domain.Prompt{}, fmt.Errorf("groq の応答に候補がありませんでした")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return domain.Prompt{}, fmt.Errorf("groq の応答が空でした")
	}

	return domain.Prompt{
		Text:     text,
		Quote:    req.Quote,
		Style:    req.Style,
		Provider: p.Name(),
	}, nil
}
