package caption

import (
	"testing"
	"time"

	"github.com/shouni/go-verse-kit/pkg/domain"
)

var (
	testQuote = domain.Quote{Text: "Miluj svého bližního jako sám sebe.", Source: "bible21"}
	testStyle = domain.ArtStyle{ID: "cubism", Name: "Cubism", Weight: 9, Shortcut: "cub"}
	testDate  = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
)

func TestCompose_WithWeather(t *testing.T) {
	t.Run("天気アイコン付きのキャプションを組み立てるのだ", func(t *testing.T) {
		weather := &domain.WeatherSnapshot{Code: "sunny", Icon: "☀"}
		caps := Compose(testQuote, testStyle, weather, testDate)

		wantTelegram := "☀2024-06-01\n\nMiluj svého bližního jako sám sebe.(cub)"
		if caps.Telegram != wantTelegram {
			t.Errorf("Telegram キャプションが違うのだ。\n期待: %q\n実際: %q", wantTelegram, caps.Telegram)
		}

		wantSocial := "Miluj svého bližního jako sám sebe.\n\n#Bible21 #Cubism #VerseOfTheDay"
		if caps.Social != wantSocial {
			t.Errorf("SNS キャプションが違うのだ。\n期待: %q\n実際: %q", wantSocial, caps.Social)
		}
	})
}

func TestCompose_WithoutWeather(t *testing.T) {
	t.Run("天気なしはアイコンが省かれるだけなのだ", func(t *testing.T) {
		caps := Compose(testQuote, testStyle, nil, testDate)

		wantTelegram := "2024-06-01\n\nMiluj svého bližního jako sám sebe.(cub)"
		if caps.Telegram != wantTelegram {
			t.Errorf("Telegram キャプションが違うのだ。\n期待: %q\n実際: %q", wantTelegram, caps.Telegram)
		}
	})

	t.Run("天気無効と天気取得失敗は同じ出力になるのだ", func(t *testing.T) {
		// どちらも nil スナップショットとして合成されるので、出力は一致する
		disabled := Compose(testQuote, testStyle, nil, testDate)
		unavailable := Compose(testQuote, testStyle, nil, testDate)
		if disabled != unavailable {
			t.Error("nil 天気の2経路で出力が一致しないのだ")
		}
	})
}

func TestCompose_Pure(t *testing.T) {
	t.Run("同じ入力からは常に同じキャプションが得られるのだ", func(t *testing.T) {
		weather := &domain.WeatherSnapshot{Code: "rain", Icon: "🌧️"}
		first := Compose(testQuote, testStyle, weather, testDate)
		for i := 0; i < 10; i++ {
			if got := Compose(testQuote, testStyle, weather, testDate); got != first {
				t.Fatalf("%d 回目で出力が変わったのだ: %+v", i, got)
			}
		}
	})
}

func TestCompose_MultiWordStyleHashtag(t *testing.T) {
	style := domain.ArtStyle{Name: "Abstract Expressionism", Shortcut: "aex", Weight: 6}
	caps := Compose(testQuote, style, nil, testDate)

	wantSocial := "Miluj svého bližního jako sám sebe.\n\n#Bible21 #AbstractExpressionism #VerseOfTheDay"
	if caps.Social != wantSocial {
		t.Errorf("複数語様式のハッシュタグが違うのだ。\n期待: %q\n実際: %q", wantSocial, caps.Social)
	}
}
