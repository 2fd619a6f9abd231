package domain

import "fmt"

// Quote は、その日の聖句テキストと取得元の識別子を保持します。
// ひとつの実行（ラン）につき一度だけ生成され、以降は変更されません。
type Quote struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// String は聖句の情報を文字列で返すのだ。
func (q Quote) String() string {
	return fmt.Sprintf("%q (source: %s)", q.Text, q.Source)
}

// Prompt は、画像生成AIへ渡す最終的な指示文です。
// ちょうど1つの Quote と1つの ArtStyle に紐づきます。
type Prompt struct {
	Text     string   `json:"text"`
	Quote    Quote    `json:"quote"`
	Style    ArtStyle `json:"style"`
	Provider string   `json:"provider"` // この指示文を生成したプロバイダ名
}

// Captions は、配信先ごとのキャプション文字列のペアです。
// Quote・ArtStyle・日付・天気アイコンから決定論的に導出されます。
type Captions struct {
	Telegram string `json:"telegram"`
	Social   string `json:"social"`
}

// WeatherSnapshot は、キャプション装飾と画像プロンプトの文脈に使う現在の天候です。
// 天気は純粋に装飾であり、取得失敗はパイプラインを止めてはならないのだ。
type WeatherSnapshot struct {
	Code        string  `json:"code"`    // Meteosource の weather コード
	Icon        string  `json:"icon"`    // コードに対応する絵文字アイコン
	Summary     string  `json:"summary"` // 自然文の概況
	Temperature float64 `json:"temperature"`
	TempMin     float64 `json:"temperature_min"`
	TempMax     float64 `json:"temperature_max"`
}
