package services

import (
	"fmt"
	"strings"
	"time"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/errs"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	keyConfirmedSubject = "receipt.confirmed.subject"
	keyConfirmedIntro   = "receipt.confirmed.intro"
	keyReadySubject     = "receipt.ready.subject"
	keyReadyIntro       = "receipt.ready.intro"
	keyItems            = "receipt.items"
	keyTotal            = "receipt.total"
	keyPickupTime       = "receipt.pickup_time"
	keyPickupCode       = "receipt.pickup_code"
	keyWarning          = "receipt.warning"
	keySignature        = "receipt.signature"
)

// DefaultLanguage is used when no mail language is configured.
var DefaultLanguage = language.Hungarian

var receiptMessages = map[language.Tag]map[string]string{
	language.Hungarian: {
		keyConfirmedSubject: "Rendelésed visszaigazolása",
		keyConfirmedIntro:   "Köszönjük a rendelésed! A büfé megkapta, hamarosan elkezdik elkészíteni.",
		keyReadySubject:     "Rendelésed átvehető",
		keyReadyIntro:       "Elkészült a rendelésed, a büfé pultjánál átveheted.",
		keyItems:            "Tételek:",
		keyTotal:            "Végösszeg: %d Ft",
		keyPickupTime:       "Átvétel ideje: %s",
		keyPickupCode:       "Átvételi kód: %s",
		keyWarning:          "Az átvételi kódot senkinek ne mondd el, csak a büfé pultjánál!",
		keySignature:        "Jó étvágyat!",
	},
	language.English: {
		keyConfirmedSubject: "Your order confirmation",
		keyConfirmedIntro:   "Thank you for your order! The buffet has received it and will start preparing it soon.",
		keyReadySubject:     "Your order is ready for pickup",
		keyReadyIntro:       "Your order is ready, you can collect it at the buffet counter.",
		keyItems:            "Items:",
		keyTotal:            "Total: %d Ft",
		keyPickupTime:       "Pickup time: %s",
		keyPickupCode:       "Pickup code: %s",
		keyWarning:          "Do not tell your pickup code to anyone except at the buffet counter!",
		keySignature:        "Enjoy your meal!",
	},
}

var timeLayouts = map[language.Tag]string{
	language.Hungarian: "2006. 01. 02. 15:04",
	language.English:   "Jan 2, 2006 15:04",
}

var supportedLanguages = []language.Tag{language.Hungarian, language.English}

var languageMatcher = language.NewMatcher(supportedLanguages)

// Receipt is a rendered email.
type Receipt struct {
	Subject string
	Body    string
}

// ReceiptComposer renders the customer facing emails of an order.
//
// The subject never contains the pickup code. The body lists every item line
// verbatim, the total computed from the "(<n> Ft)" annotations, the pickup
// time in the configured location and the pickup code surrounded by a warning
// that it must only be told at the counter.
//
// A ReceiptComposer is immutable and safe for concurrent use.
type ReceiptComposer struct {
	tag      language.Tag
	catalog  catalog.Catalog
	location *time.Location
	layout   string
}

// NewReceiptComposer creates a composer for lang ("hu" or "en", empty means
// Hungarian). A nil location renders pickup times in UTC.
//
// Example:
//
//	loc, _ := time.LoadLocation("Europe/Budapest")
//	composer, err := services.NewReceiptComposer("hu", loc)
func NewReceiptComposer(lang string, location *time.Location) (*ReceiptComposer, error) {
	tag, err := matchLanguage(lang)
	if err != nil {
		return nil, err
	}

	cat, err := newReceiptCatalog()
	if err != nil {
		return nil, err
	}

	if location == nil {
		location = time.UTC
	}

	return &ReceiptComposer{
		tag:      tag,
		catalog:  cat,
		location: location,
		layout:   timeLayouts[tag],
	}, nil
}

// Language returns the language the composer renders in.
func (c *ReceiptComposer) Language() language.Tag {
	return c.tag
}

// Confirmed renders the email sent right after checkout.
func (c *ReceiptComposer) Confirmed(o *order.Order) (Receipt, error) {
	return c.compose(o, keyConfirmedSubject, keyConfirmedIntro)
}

// Ready renders the email sent when the order enters the ready state.
func (c *ReceiptComposer) Ready(o *order.Order) (Receipt, error) {
	return c.compose(o, keyReadySubject, keyReadyIntro)
}

func (c *ReceiptComposer) compose(o *order.Order, subjectKey, introKey string) (Receipt, error) {
	if err := o.Validate(); err != nil {
		return Receipt{}, err
	}

	p := message.NewPrinter(c.tag, message.Catalog(c.catalog))

	var body strings.Builder
	writeLine := func(s string) {
		body.WriteString(s)
		body.WriteString("\n")
	}

	writeLine(p.Sprintf(introKey))
	writeLine("")
	writeLine(p.Sprintf(keyWarning))
	writeLine("")
	writeLine(p.Sprintf(keyItems))
	for _, item := range o.Items() {
		writeLine(" - " + item)
	}
	writeLine(p.Sprintf(keyTotal, o.Total()))
	writeLine("")
	writeLine(p.Sprintf(keyPickupTime, o.PickupTime().In(c.location).Format(c.layout)))
	writeLine(p.Sprintf(keyPickupCode, o.PickupCode().String()))
	writeLine("")
	writeLine(p.Sprintf(keyWarning))
	writeLine("")
	writeLine(p.Sprintf(keySignature))

	return Receipt{
		Subject: p.Sprintf(subjectKey),
		Body:    body.String(),
	}, nil
}

func matchLanguage(lang string) (language.Tag, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return DefaultLanguage, nil
	}

	requested, err := language.Parse(lang)
	if err != nil {
		return language.Und, errs.NewValueIsInvalidErrorWithCause("language", err)
	}

	_, index, confidence := languageMatcher.Match(requested)
	if confidence == language.No {
		return language.Und, errs.NewValueIsInvalidErrorWithCause("language", fmt.Errorf("%s is not supported", lang))
	}
	return supportedLanguages[index], nil
}

func newReceiptCatalog() (*catalog.Builder, error) {
	builder := catalog.NewBuilder(catalog.Fallback(DefaultLanguage))
	for tag, messages := range receiptMessages {
		for key, msg := range messages {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("register %s message %s: %w", tag, key, err)
			}
		}
	}
	return builder, nil
}
