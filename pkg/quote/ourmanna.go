package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shouni/go-verse-kit/pkg/domain"
)

const ourMannaSourceID = "ourmanna"

// ourMannaResponse は OurManna API のレスポンス形式です。
type ourMannaResponse struct {
	Verse struct {
		Details struct {
			Text      string `json:"text"`
			Reference string `json:"reference"`
		} `json:"details"`
	} `json:"verse"`
}

// OurMannaFetcher はセカンダリの聖句ソース（OurManna の JSON API）です。
// スクレイプと違って構造が安定しているので、フォールバック先として使うのだ。
type OurMannaFetcher struct {
	endpoint   string
	httpClient *http.Client
}

// NewOurMannaFetcher は新しい OurMannaFetcher を生成して返すのだ。
func NewOurMannaFetcher(endpoint string, httpClient *http.Client) *OurMannaFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OurMannaFetcher{endpoint: endpoint, httpClient: httpClient}
}

// Source はソース識別子を返します。
func (f *OurMannaFetcher) Source() string {
	return ourMannaSourceID
}

// Fetch は API から今日の聖句を取得します。
func (f *OurMannaFetcher) Fetch(ctx context.Context) (domain.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("ourmanna の取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Quote{}, fmt.Errorf("ourmanna が異常ステータスを返しました: %s", resp.Status)
	}

	var body ourMannaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Quote{}, fmt.Errorf("ourmanna レスポンスの解析に失敗しました: %w", err)
	}

	text := strings.TrimSpace(body.Verse.Details.Text)
	if text == "" {
		return domain.Quote{}, fmt.Errorf("ourmanna レスポンスに聖句がありませんでした")
	}

	// 参照箇所があれば本文に添えるのだ（bible21 形式に揃える）
	if ref := strings.TrimSpace(body.Verse.Details.Reference); ref != "" {
		text = fmt.Sprintf("%s(%s)", text, ref)
	}

	return domain.Quote{Text: text, Source: f.Source()}, nil
}
