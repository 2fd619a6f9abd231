package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-verse-kit/internal/config"
	"github.com/shouni/go-verse-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、今日の聖句画像の生成から配信までの全工程を実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "今日の聖句から画像を生成して配信しますなのだ。",
	Long: `bible21.cz から今日の聖句を取得し、美術様式を抽選してAIで画像を生成するのだ。
完成した画像はキャプション付きで Telegram（および設定次第で X）へ配信されるのだよ。`,
	RunE: generateCommand,
}

func init() {
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("聖句画像パイプラインを起動するのだ！",
		"production", cfg.Production,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"twitter", cfg.TwitterEnabled,
		"weather", cfg.WeatherEnabled)

	// 2. 更新した config を考慮しつつパイプラインを実行するのだ
	err := pipeline.Execute(ctx, cfg)
	if err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
