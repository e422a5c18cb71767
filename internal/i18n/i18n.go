// Package i18n holds translated strings for report headers and user notices.
package i18n

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	KeyIDReportInfo     = "report.ids.info"
	KeyIDReportError    = "report.ids.error"
	KeyInTransitLabel   = "report.inTransit.label"
	KeyInTransitEmpty   = "report.inTransit.empty"
	KeyInTransitError   = "report.inTransit.error"
	KeyExportInProgress = "report.inProgress"
	KeyInstanceCreated  = "instance.created"
)

// In-transit report column keys, in column order.
var InTransitColumns = []string{
	"barcode",
	"title",
	"contributors",
	"callNumber",
	"enumeration",
	"volume",
	"yearCaption",
	"itemStatus",
	"effectiveLocation",
	"destinationServicePoint",
	"requestType",
	"requesterPatronGroup",
	"requestCreationDate",
	"requestExpirationDate",
	"requestPickupServicePoint",
	"lastCheckInDateTime",
	"lastCheckInServicePoint",
}

// ColumnKey returns the message key of an in-transit column.
func ColumnKey(column string) string {
	return "report.inTransit.column." + column
}

var supported = []language.Tag{language.English, language.German, language.Spanish}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(supported)
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("i18n: " + key + ": " + err.Error())
			}
		}
	}
	return b
}

// Match picks the best supported language for an Accept-Language header.
// Empty or unparseable input yields English.
func Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// Printer translates message keys for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter returns a printer for tag.
func NewPrinter(tag language.Tag) *Printer {
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// ForAcceptLanguage is NewPrinter(Match(header)).
func ForAcceptLanguage(header string) *Printer {
	return NewPrinter(Match(header))
}

// Tag returns the printer's language.
func (p *Printer) Tag() language.Tag { return p.tag }

// T translates key, formatting args into it.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// InTransitHeader returns the translated in-transit column headers.
func (p *Printer) InTransitHeader() []string {
	out := make([]string, len(InTransitColumns))
	for i, c := range InTransitColumns {
		out[i] = p.T(ColumnKey(c))
	}
	return out
}

type ctxKey struct{}

// ContextWithPrinter stores p in ctx.
func ContextWithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the printer stored in ctx, or an English one.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return english
}

var english = NewPrinter(language.English)
