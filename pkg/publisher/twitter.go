package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dghubble/oauth1"

	"github.com/shouni/go-verse-kit/pkg/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

const (
	defaultTwitterUploadURL = "https://upload.twitter.com/1.1/media/upload.json"
	defaultTwitterTweetURL  = "https://api.twitter.com/2/tweets"
)

// TwitterConfig は X/Twitter 配信の OAuth1 資格情報です。
type TwitterConfig struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string

	// テスト用の差し替え口。省略時は本番API。
	UploadURL string
	TweetURL  string
}

// TwitterPublisher は v1.1 の media/upload と v2 の tweets を組み合わせて投稿します。
// メディアのアップロードだけが v1.1 に残っているのが現行APIの実情なのだ。
type TwitterPublisher struct {
	cfg        TwitterConfig
	httpClient *http.Client
}

// NewTwitterPublisher は OAuth1 署名付きHTTPクライアントを組み立てて返すのだ。
func NewTwitterPublisher(cfg TwitterConfig) (*TwitterPublisher, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" || cfg.AccessToken == "" || cfg.AccessTokenSecret == "" {
		return nil, fmt.Errorf("twitter の OAuth1 資格情報が不足しています")
	}
	if cfg.UploadURL == "" {
		cfg.UploadURL = defaultTwitterUploadURL
	}
	if cfg.TweetURL == "" {
		cfg.TweetURL = defaultTwitterTweetURL
	}

	oauthConfig := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret)

	return &TwitterPublisher{
		cfg:        cfg,
		httpClient: oauthConfig.Client(oauth1.NoContext, token),
	}, nil
}

// Name はシンク識別子を返します。
func (p *TwitterPublisher) Name() string { return "twitter" }

// Publish はメディアをアップロードし、SNS用キャプションでツイートを作成します。
func (p *TwitterPublisher) Publish(ctx context.Context, img *imagedom.ImageResponse, caps domain.Captions) error {
	mediaID, err := p.uploadMedia(ctx, img)
	if err != nil {
		return fmt.Errorf("メディアのアップロードに失敗しました: %w", err)
	}

	if err := p.createTweet(ctx, caps.Social, mediaID); err != nil {
		return fmt.Errorf("ツイートの作成に失敗しました: %w", err)
	}

	return nil
}

type mediaUploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}

func (p *TwitterPublisher) uploadMedia(ctx context.Context, img *imagedom.ImageResponse) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("media", "verse"+extensionFor(img.MimeType))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.UploadURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload API が異常ステータスを返しました: %s (%s)", resp.Status, body)
	}

	var uploaded mediaUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("upload レスポンスの解析に失敗しました: %w", err)
	}
	if uploaded.MediaIDString == "" {
		return "", fmt.Errorf("upload レスポンスに media_id がありませんでした")
	}

	return uploaded.MediaIDString, nil
}

type createTweetRequest struct {
	Text  string `json:"text"`
	Media struct {
		MediaIDs []string `json:"media_ids"`
	} `json:"media"`
}

func (p *TwitterPublisher) createTweet(ctx context.Context, text, mediaID string) error {
	var body createTweetRequest
	body.Text = text
	body.Media.MediaIDs = []string{mediaID}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.TweetURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tweets API が異常ステータスを返しました: %s (%s)", resp.Status, respBody)
	}

	return nil
}
