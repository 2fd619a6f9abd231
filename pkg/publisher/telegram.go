package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/shouni/go-verse-kit/pkg/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

const defaultTelegramAPIBase = "https://api.telegram.org"

// TelegramConfig は Telegram 配信の設定です。
type TelegramConfig struct {
	Token   string
	ChatID  string
	APIBase string        // テスト用の差し替え口。省略時は本番API。
	Timeout time.Duration // 省略時: 30s
}

// TelegramPublisher は Bot API の sendPhoto でチャンネルへ画像を投稿します。
type TelegramPublisher struct {
	cfg        TelegramConfig
	httpClient *http.Client
}

// NewTelegramPublisher は新しい TelegramPublisher を生成して返すのだ。
func NewTelegramPublisher(cfg TelegramConfig) (*TelegramPublisher, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram トークンは必須です")
	}
	if cfg.ChatID == "" {
		return nil, fmt.Errorf("telegram チャットIDは必須です")
	}
	if cfg.APIBase == "" {
		cfg.APIBase = defaultTelegramAPIBase
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &TelegramPublisher{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name はシンク識別子を返します。
func (p *TelegramPublisher) Name() string { return "telegram" }

// telegramResponse は Bot API の共通レスポンス形式です。
type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Publish は multipart/form-data で sendPhoto を呼び出します。
// Telegram 用キャプションを使うのだ。
func (p *TelegramPublisher) Publish(ctx context.Context, img *imagedom.ImageResponse, caps domain.Captions) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("chat_id", p.cfg.ChatID); err != nil {
		return fmt.Errorf("フォームの構築に失敗しました: %w", err)
	}
	if err := w.WriteField("caption", caps.Telegram); err != nil {
		return fmt.Errorf("フォームの構築に失敗しました: %w", err)
	}

	part, err := w.CreateFormFile("photo", "verse"+extensionFor(img.MimeType))
	if err != nil {
		return fmt.Errorf("フォームの構築に失敗しました: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return fmt.Errorf("画像データの書き込みに失敗しました: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("フォームの終端に失敗しました: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendPhoto", p.cfg.APIBase, p.cfg.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram への送信に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var tgResp telegramResponse
	if err := json.Unmarshal(body, &tgResp); err != nil {
		return fmt.Errorf("telegram レスポンスの解析に失敗しました (status=%s): %w", resp.Status, err)
	}
	if !tgResp.OK {
		return fmt.Errorf("telegram がエラーを返しました (status=%s): %s", resp.Status, tgResp.Description)
	}

	return nil
}
