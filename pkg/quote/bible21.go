package quote

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shouni/go-verse-kit/pkg/domain"
)

const bible21SourceID = "bible21"

// Bible21Fetcher は bible21.cz のトップページから「今日の言葉」を抜き出します。
// 対象要素は span.<quoteClass>（既定: daily-word__quote）です。
type Bible21Fetcher struct {
	baseURL    string
	quoteClass string
	httpClient *http.Client
}

// NewBible21Fetcher は新しい Bible21Fetcher を生成して返すのだ。
func NewBible21Fetcher(baseURL, quoteClass string, httpClient *http.Client) *Bible21Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Bible21Fetcher{
		baseURL:    baseURL,
		quoteClass: quoteClass,
		httpClient: httpClient,
	}
}

// Source はソース識別子を返します。
func (f *Bible21Fetcher) Source() string {
	return bible21SourceID
}

// Fetch はページを取得し、聖句要素のテキストを抜き出します。
// 要素が見つからない場合もエラー扱い（ページ構造の変更とみなす）なのだ。
func (f *Bible21Fetcher) Fetch(ctx context.Context) (domain.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("bible21 の取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Quote{}, fmt.Errorf("bible21 が異常ステータスを返しました: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("HTMLの解析に失敗しました: %w", err)
	}

	text := strings.TrimSpace(doc.Find("span." + f.quoteClass).First().Text())
	if text == "" {
		return domain.Quote{}, fmt.Errorf("聖句要素 span.%s が見つかりませんでした", f.quoteClass)
	}

	return domain.Quote{Text: text, Source: f.Source()}, nil
}
