package cmd

import (
	"log/slog"

	"github.com/shouni/go-verse-kit/internal/config"
	"github.com/shouni/go-verse-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// quoteCmd は、聖句の取得だけを実行して標準出力へ表示するサブコマンドなのだ。
// スクレイプ先のHTML構造が変わっていないかの動作確認に便利なのだ。
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "今日の聖句を取得して表示するのだ。",
	Long: `bible21.cz から今日の聖句を取得して標準出力へ表示するのだ。
取得に失敗した場合はフォールバックのAPIを試すのだよ。画像生成や配信は行わないのだ。`,
	RunE: quoteCommand,
}

func init() {
}

func quoteCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("聖句取得モードを起動するのだ！", "url", cfg.BibleURL)

	return pipeline.ExecuteQuoteOnly(ctx, cfg)
}
