package publisher

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// ローカルと GCS（gs://）の両方で安全な出力パスを組み立てます。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	if strings.HasPrefix(strings.ToLower(baseDir), "gs://") {
		u, err := url.Parse(baseDir)
		if err != nil {
			return "", fmt.Errorf("無効なGCS URIです: %w", err)
		}

		// url.JoinPath はパス部分のみを安全に結合し、スキーム部分を保護します
		u.Path, err = url.JoinPath(u.Path, fileName)
		if err != nil {
			return "", fmt.Errorf("GCSパスの結合に失敗しました: %w", err)
		}
		return u.String(), nil
	}
	return filepath.Join(baseDir, fileName), nil
}
