package domain

import "errors"

// パイプライン各段の致命的エラーの区分なのだ。
// リトライとフォールバックを使い尽くした後にのみ、これらへ昇格する。
var (
	// ErrSourceUnavailable は、すべての聖句ソースが失敗したことを示します（致命的）。
	ErrSourceUnavailable = errors.New("聖句をどのソースからも取得できませんでした")

	// ErrPromptGeneration は、すべてのプロンプト生成プロバイダが尽きたことを示します（致命的）。
	ErrPromptGeneration = errors.New("画像プロンプトの生成にすべてのプロバイダで失敗しました")

	// ErrImageGeneration は、画像合成の失敗を示します（致命的）。
	ErrImageGeneration = errors.New("画像の生成に失敗しました")

	// ErrPublish はシンク単位の配信失敗を示します。ログには残すが、
	// 他のシンクや先行ステージには影響させない（非致命的）。
	ErrPublish = errors.New("配信に失敗しました")
)
