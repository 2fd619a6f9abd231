package domain

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ArtStyle は画像生成に使う美術様式の定義を保持します。
type ArtStyle struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"` // 生成プロンプトに注入する様式上の特徴
	Weight          int      `json:"weight"`          // 重み付き抽選の選択比重（正の整数）
	Shortcut        string   `json:"shortcut"`        // キャプション末尾に付ける短縮記号
}

// String は様式の情報を文字列で返すのだ。
func (s ArtStyle) String() string {
	return fmt.Sprintf("%s (%s, weight=%d)", s.Name, s.Shortcut, s.Weight)
}

// HashtagName は SNS 投稿用のハッシュタグ名（空白・アンダースコア除去、語頭大文字）を返します。
func (s ArtStyle) HashtagName() string {
	fields := strings.FieldsFunc(s.Name, func(r rune) bool {
		return r == ' ' || r == '_'
	})
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strings.ToUpper(f[:1]))
		b.WriteString(f[1:])
	}
	return b.String()
}

// LoadStyles は指定されたファイルパスからJSONを読み込み、様式テーブルを返すのだ。
func LoadStyles(path string) ([]ArtStyle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("様式テーブルの読み込みに失敗したのだ: %w", err)
	}
	return GetStyles(data)
}

// GetStyles はJSONバイト列から様式テーブルをパースし、不変条件を検証して返すのだ。
// 検証内容: 重みはすべて正、短縮記号は一意、テーブルは空でないこと。
func GetStyles(stylesJSON []byte) ([]ArtStyle, error) {
	var styles []ArtStyle
	if err := json.Unmarshal(stylesJSON, &styles); err != nil {
		return nil, fmt.Errorf("様式テーブルのデコードに失敗したのだ: %w", err)
	}
	if err := ValidateStyles(styles); err != nil {
		return nil, err
	}
	return styles, nil
}

// ValidateStyles は様式テーブルの不変条件を検証します。
func ValidateStyles(styles []ArtStyle) error {
	if len(styles) == 0 {
		return fmt.Errorf("様式テーブルが空です")
	}
	seen := make(map[string]string, len(styles))
	for _, s := range styles {
		if s.Weight <= 0 {
			return fmt.Errorf("様式 '%s' の重みが正の整数ではありません: %d", s.Name, s.Weight)
		}
		if s.Shortcut == "" {
			return fmt.Errorf("様式 '%s' に短縮記号がありません", s.Name)
		}
		if other, dup := seen[s.Shortcut]; dup {
			return fmt.Errorf("短縮記号 '%s' が重複しています: '%s' と '%s'", s.Shortcut, other, s.Name)
		}
		seen[s.Shortcut] = s.Name
	}
	return nil
}

// TotalWeight はテーブル全体の重みの合計を返します。
func TotalWeight(styles []ArtStyle) int {
	total := 0
	for _, s := range styles {
		total += s.Weight
	}
	return total
}
