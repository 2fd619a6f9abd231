package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-verse-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は、コマンドラインフラグの値を束ねる実行時オプションなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.QuoteText, "quote-text", "q", "", "聖句の取得をスキップして、このテキストを直接使うのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.QuoteFile, "quote-file", "f", "", "聖句をファイルから読み込むのだ（--quote-text が優先）。")
	rootCmd.PersistentFlags().StringVarP(&opts.StylesFile, "styles-file", "s", config.DefaultStylesFile, "美術様式テーブルを定義したJSONパス（省略時は組み込みテーブル）なのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputImageDir, "output-image-dir", "i", config.DefaultLocalImageDir, "生成された画像を保存するディレクトリ（ローカル or gs://...）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "プロンプト強化に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	rootCmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 0, "様式抽選の乱数シード（0なら時刻由来）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.PlaceID, "place-id", "", "天気を取得する地点ID（省略時は WEATHER_PLACE_ID）なのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// quote コマンドはAIを使わないので、APIキーのチェックをスキップするのだ
	if cmd.Name() == "quote" {
		return nil
	}

	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-verse-go",
		addAppFlags,
		preRunAppE,
		generateCmd,
		quoteCmd,
		imageCmd,
	)
}
