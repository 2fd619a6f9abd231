// Package caption は、配信先ごとのキャプション文字列を組み立てます。
// 純粋関数のみで構成され、同じ入力からは常に同じ出力が得られるのだ。
package caption

import (
	"fmt"
	"time"

	"github.com/shouni/go-verse-kit/pkg/domain"
)

// dateLayout はキャプションに埋め込む日付の形式です。
const dateLayout = "2006-01-02"

// Compose は聖句・様式・日付・（任意の）天候からキャプションのペアを導出します。
// weather が nil でも失敗せず、アイコンが省かれるだけなのだ。
//
// Telegram: "<天気アイコン><日付>\n\n<聖句>(<短縮記号>)"
// SNS:      "<聖句>\n\n#Bible21 #<様式名> #VerseOfTheDay"
func Compose(quote domain.Quote, style domain.ArtStyle, weather *domain.WeatherSnapshot, now time.Time) domain.Captions {
	icon := ""
	if weather != nil {
		icon = weather.Icon
	}

	return domain.Captions{
		Telegram: fmt.Sprintf("%s%s\n\n%s(%s)",
			icon, now.Format(dateLayout), quote.Text, style.Shortcut),
		Social: fmt.Sprintf("%s\n\n#Bible21 #%s #VerseOfTheDay",
			quote.Text, style.HashtagName()),
	}
}
