package publisher

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shouni/go-verse-kit/pkg/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// ArchivePublisher は成果物の永続化を担います。
// 配信とは独立に、画像とキャプションをローカルディレクトリまたは
// GCS（gs://...）へ日付入りファイル名で保存するのだ。
type ArchivePublisher struct {
	writer    remoteio.OutputWriter
	outputDir string
	now       func() time.Time
}

// NewArchivePublisher は新しい ArchivePublisher を生成して返すのだ。
func NewArchivePublisher(writer remoteio.OutputWriter, outputDir string) (*ArchivePublisher, error) {
	if writer == nil {
		return nil, fmt.Errorf("OutputWriter は必須です")
	}
	if outputDir == "" {
		return nil, fmt.Errorf("出力ディレクトリは必須です")
	}
	return &ArchivePublisher{
		writer:    writer,
		outputDir: outputDir,
		now:       time.Now,
	}, nil
}

// Name はシンク識別子を返します。
func (p *ArchivePublisher) Name() string { return "archive" }

// Publish は画像とキャプションテキストを書き出します。
func (p *ArchivePublisher) Publish(ctx context.Context, img *imagedom.ImageResponse, caps domain.Captions) error {
	date := p.now().Format("2006-01-02")

	imagePath, err := ResolveOutputPath(p.outputDir, "verse_"+date+extensionFor(img.MimeType))
	if err != nil {
		return err
	}
	if err := p.writer.Write(ctx, imagePath, bytes.NewReader(img.Data), img.MimeType); err != nil {
		return fmt.Errorf("画像の書き込みに失敗しました: %w", err)
	}

	captionPath, err := ResolveOutputPath(p.outputDir, "verse_"+date+".txt")
	if err != nil {
		return err
	}
	if err := p.writer.Write(ctx, captionPath, strings.NewReader(caps.Telegram), "text/plain; charset=utf-8"); err != nil {
		return fmt.Errorf("キャプションの書き込みに失敗しました: %w", err)
	}

	return nil
}
