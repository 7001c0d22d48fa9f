// Package lang maps countries to languages and translates keyword sets for
// non-English search queries.
package lang

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/PopVibeCoding/rev-finder-web-scraper/pkg/translate"
)

// countryLanguages is a fixed country → ISO 639-1 lookup. Anything missing
// falls back to English.
var countryLanguages = map[string]string{
	"germany":     "de",
	"austria":     "de",
	"switzerland": "de",
	"france":      "fr",
	"belgium":     "fr",
	"spain":       "es",
	"mexico":      "es",
	"argentina":   "es",
	"colombia":    "es",
	"chile":       "es",
	"italy":       "it",
	"portugal":    "pt",
	"brazil":      "pt",
	"netherlands": "nl",
	"sweden":      "sv",
	"norway":      "no",
	"denmark":     "da",
	"finland":     "fi",
	"poland":      "pl",
	"czechia":     "cs",
	"turkey":      "tr",
	"japan":       "ja",
	"china":       "zh",
	"taiwan":      "zh",
	"south korea": "ko",
	"russia":      "ru",
}

// LanguageFor returns the language code for a country, case-insensitively,
// defaulting to "en". The code is round-tripped through a BCP 47 parse so
// table typos cannot leak malformed tags to the translation backend.
func LanguageFor(country string) string {
	code, ok := countryLanguages[strings.ToLower(strings.TrimSpace(country))]
	if !ok {
		return "en"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "en"
	}
	base, _ := tag.Base()
	return base.String()
}

// Adapter translates keyword sets using an optional backend. A nil
// translator means translation is unavailable and every call degrades to
// the original keywords.
type Adapter struct {
	translator translate.Client
}

// NewAdapter creates an Adapter. Pass nil when no backend is configured.
func NewAdapter(translator translate.Client) *Adapter {
	return &Adapter{translator: translator}
}

// Available reports whether a translation backend is configured.
func (a *Adapter) Available() bool {
	return a != nil && a.translator != nil
}

// TranslateKeywords translates each keyword from English into targetLang.
// English targets and unavailable backends are no-ops. A failure on one
// element keeps that element's original text; the batch never fails.
func (a *Adapter) TranslateKeywords(ctx context.Context, keywords []string, targetLang string) []string {
	if targetLang == "" || targetLang == "en" || !a.Available() {
		return keywords
	}

	out := make([]string, len(keywords))
	for i, kw := range keywords {
		translated, err := a.translator.Translate(ctx, kw, "en", targetLang)
		if err != nil || strings.TrimSpace(translated) == "" {
			zap.L().Debug("lang: keyword translation failed, keeping original",
				zap.String("keyword", kw),
				zap.String("target", targetLang),
				zap.Error(err),
			)
			out[i] = kw
			continue
		}
		out[i] = translated
	}
	return out
}
