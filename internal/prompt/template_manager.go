// Package prompt は、LLMへ渡す指示文テンプレートを埋め込みで保持します。
package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/shouni/go-verse-kit/pkg/domain"
)

//go:embed enhance.md
var enhanceTemplate string

//go:embed static.md
var staticTemplate string

// templateData はテンプレートへ流し込む値なのだ。
type templateData struct {
	Quote           string
	StyleName       string
	Characteristics string
}

var (
	enhanceTmpl = template.Must(template.New("enhance").Parse(enhanceTemplate))
	staticTmpl  = template.Must(template.New("static").Parse(staticTemplate))
)

// BuildSystemPrompt は、指定様式向けのシステム指示文を構築するのだ。
func BuildSystemPrompt(style domain.ArtStyle) (string, error) {
	return render(enhanceTmpl, templateData{
		StyleName:       style.Name,
		Characteristics: strings.Join(style.Characteristics, ", "),
	})
}

// BuildUserPrompt は、聖句と（あれば）天候の文脈からユーザー指示文を構築するのだ。
// 聖句そのものを画像の説明に含めないよう明示するのがポイントなのだ。
func BuildUserPrompt(quote domain.Quote, weatherContext string) string {
	var b strings.Builder
	b.WriteString("Create a detailed image generation prompt for this Bible quote, but do not use the quote itself in the description of the image: ")
	b.WriteString(quote.Text)
	if weatherContext != "" {
		b.WriteString("\n\nConsider this weather context, but do not use it as main focus: ")
		b.WriteString(weatherContext)
	}
	return b.String()
}

// BuildStaticPrompt は、LLMが全滅したときの最終手段となる定型プロンプトを返すのだ。
func BuildStaticPrompt(quote domain.Quote, style domain.ArtStyle) (string, error) {
	return render(staticTmpl, templateData{
		Quote:           quote.Text,
		StyleName:       style.Name,
		Characteristics: strings.Join(style.Characteristics, ", "),
	})
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("プロンプトテンプレートの展開に失敗したのだ: %w", err)
	}
	return b.String(), nil
}
