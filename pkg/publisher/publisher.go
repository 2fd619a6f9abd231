// Package publisher は、生成した画像とキャプションを各配信先へ送ります。
// 各シンクは独立したベストエフォートであり、あるシンクの失敗が
// 他のシンクや先行ステージへ波及してはならないのだ。
package publisher

import (
	"context"

	"github.com/shouni/go-verse-kit/pkg/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// Publisher は単一の配信先へのインターフェースです。
// どのキャプション（Telegram用かSNS用か）を使うかは各シンクが自分で選びます。
type Publisher interface {
	// Name はシンクの識別子を返します。
	Name() string

	// Publish は画像とキャプションを配信します。
	Publish(ctx context.Context, img *imagedom.ImageResponse, caps domain.Captions) error
}

// extensionFor は MIME タイプからファイル拡張子を決めるのだ。
func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
