package cmd

import (
	"log/slog"

	"github.com/shouni/go-verse-kit/internal/config"
	"github.com/shouni/go-verse-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// imageCmd は、配信をスキップして画像生成とアーカイブ保存だけを実行するサブコマンドなのだ。
// チャンネルへ投稿する前に、生成結果を目で確かめたい場合に便利なのだ。
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "聖句画像を生成して保存するのだ（配信なし）。",
	Long: `聖句の取得、様式抽選、プロンプト強化、画像生成までを実行し、
結果を --output-image-dir へ保存するのだ。Telegram や X への配信は行わないのだよ。`,
	RunE: imageCommand,
}

func init() {
}

func imageCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 環境変数から基本設定をロード
	cfg := config.LoadConfig()

	// 2. コマンドライン引数の値を反映
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("画像生成モードを起動するのだ！",
		"output_image_dir", cfg.Options.OutputImageDir,
		"image_model", cfg.GeminiImageModel)

	// 3. パイプライン実行
	return pipeline.ExecuteImageOnly(ctx, cfg)
}
