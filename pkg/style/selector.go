// Package style は、美術様式テーブルからの重み付きランダム抽選を提供します。
package style

import (
	_ "embed"
	"fmt"
	"math/rand"

	"github.com/shouni/go-verse-kit/pkg/domain"
)

//go:embed styles.json
var defaultStylesJSON []byte

// DefaultStyles は組み込みの標準様式テーブルを返すのだ。
// 運用では --styles-file で外部JSONに差し替えられる（重みは改訂されがちなので）。
func DefaultStyles() ([]domain.ArtStyle, error) {
	return domain.GetStyles(defaultStylesJSON)
}

// Selector は重み付きランダム抽選器です。
// 乱数源を注入できるため、シードを固定すれば抽選結果は再現可能です。
type Selector struct {
	styles []domain.ArtStyle
	total  int
	rng    *rand.Rand
}

// NewSelector は様式テーブルを検証し、新しい Selector を生成して返すのだ。
func NewSelector(styles []domain.ArtStyle, rng *rand.Rand) (*Selector, error) {
	if err := domain.ValidateStyles(styles); err != nil {
		return nil, fmt.Errorf("抽選器を初期化できないのだ: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("乱数源（rng）は必須です")
	}

	// 呼び出し元によるテーブル変更から守るため、防御的コピーを持つのだ
	copied := make([]domain.ArtStyle, len(styles))
	copy(copied, styles)

	return &Selector{
		styles: copied,
		total:  domain.TotalWeight(copied),
		rng:    rng,
	}, nil
}

// Select は累積重み方式で様式を1つ抽選します。
// [0, totalWeight) の一様乱数を引き、累積値が初めて乱数を超えた様式を返します。
// 選択確率 = weight / sum(all weights)。
func (s *Selector) Select() domain.ArtStyle {
	r := s.rng.Intn(s.total)
	current := 0
	for _, st := range s.styles {
		current += st.Weight
		if r < current {
			return st
		}
	}
	// 重みはすべて正なので到達しないが、最後の要素を安全側の既定とする
	return s.styles[len(s.styles)-1]
}
