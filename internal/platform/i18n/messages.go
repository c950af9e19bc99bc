package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	KeyBundleIncomplete = "%s requires at least %d items, %d selected."
	KeyLookupRetry      = "The menu could not be checked right now. Please try again."
	KeyCheckoutBusy     = "A checkout for this cart is already in progress."
	KeyMutationFailed   = "The cart could not be updated."
	KeyEmptyCart        = "Your cart is empty."
)

var supported = []language.Tag{language.German, language.English}

var entries = map[language.Tag]map[string]string{
	language.German: {
		KeyBundleIncomplete: "Für „%s“ werden mindestens %d Artikel benötigt, ausgewählt sind %d.",
		KeyLookupRetry:      "Das Menü konnte gerade nicht geprüft werden. Bitte versuchen Sie es erneut.",
		KeyCheckoutBusy:     "Für diesen Warenkorb läuft bereits ein Bestellvorgang.",
		KeyMutationFailed:   "Der Warenkorb konnte nicht aktualisiert werden.",
		KeyEmptyCart:        "Ihr Warenkorb ist leer.",
	},
	language.English: {
		KeyBundleIncomplete: KeyBundleIncomplete,
		KeyLookupRetry:      KeyLookupRetry,
		KeyCheckoutBusy:     KeyCheckoutBusy,
		KeyMutationFailed:   KeyMutationFailed,
		KeyEmptyCart:        KeyEmptyCart,
	},
}

type Translator struct {
	catalog  catalog.Catalog
	matcher  language.Matcher
	tags     []language.Tag
	fallback language.Tag
}

// NewTranslator builds the message catalog. defaultLocale picks the language used when
// the request does not name a supported one.
func NewTranslator(defaultLocale string) *Translator {
	fallback, err := language.Parse(defaultLocale)
	if err != nil || !isSupported(fallback) {
		fallback = language.German
	}

	b := catalog.NewBuilder(catalog.Fallback(fallback))
	for tag, msgs := range entries {
		for key, msg := range msgs {
			_ = b.SetString(tag, key, msg)
		}
	}

	tags := []language.Tag{fallback}
	for _, t := range supported {
		if t != fallback {
			tags = append(tags, t)
		}
	}

	return &Translator{
		catalog:  b,
		matcher:  language.NewMatcher(tags),
		tags:     tags,
		fallback: fallback,
	}
}

// Printer returns a printer for the best match of an Accept-Language header value.
func (t *Translator) Printer(acceptLanguage string) *message.Printer {
	tag := t.fallback
	if acceptLanguage != "" {
		if prefs, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(prefs) > 0 {
			_, idx, conf := t.matcher.Match(prefs...)
			if conf != language.No {
				tag = t.tags[idx]
			}
		}
	}
	return message.NewPrinter(tag, message.Catalog(t.catalog))
}

func isSupported(tag language.Tag) bool {
	base, _ := tag.Base()
	for _, s := range supported {
		sb, _ := s.Base()
		if sb == base {
			return true
		}
	}
	return false
}
