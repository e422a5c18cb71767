package cql

import (
	"github.com/kailas-cloud/inventory/internal/domain/query"
	"github.com/kailas-cloud/inventory/internal/domain/refdata"
)

// Index names shared by every segment.
const (
	IndexAll         = "all"
	IndexContributor = "contributor"
	IndexTitle       = "title"
	IndexIdentifier  = "identifier"
	IndexISBN        = "isbn"
	IndexISSN        = "issn"
	IndexSubject     = "subject"
	IndexHRID        = "hrid"
	IndexID          = "id"
	IndexQuerySearch = "querySearch"
)

// Segment-specific index names.
const (
	IndexCallNumber   = "callNumber"
	IndexHoldingsHRID = "holdingsHrid"
	IndexBarcode      = "barcode"
	IndexItemHRID     = "itemHrid"
)

// Template placeholders.
const (
	phValue  = "{value}"
	phTypeID = "{typeId}"
)

type filterKind int

const (
	filterTerms filterKind = iota
	filterDateRange
	filterLookup
)

// searchIndex renders a free-text query against one index.
type searchIndex struct {
	name     string
	template string
	// identifierType names the identifier type whose id fills {typeId}.
	identifierType string
}

// filterGroup maps a filter name onto a CQL field.
type filterGroup struct {
	name  string
	field string
	kind  filterKind
	table refdata.Kind
}

// segmentConfig describes what one segment can search, filter and sort on.
type segmentConfig struct {
	indexes []searchIndex
	filters []filterGroup
	sorts   map[string]string
}

func (c *segmentConfig) index(name string) (searchIndex, bool) {
	for _, ix := range c.indexes {
		if ix.name == name {
			return ix, true
		}
	}
	return searchIndex{}, false
}

func (c *segmentConfig) filter(name string) (filterGroup, bool) {
	for _, f := range c.filters {
		if f.name == name {
			return f, true
		}
	}
	return filterGroup{}, false
}

// segmentBuilder is a fluent builder for segment configurations.
type segmentBuilder struct {
	cfg segmentConfig
}

func newSegment() *segmentBuilder {
	return &segmentBuilder{cfg: segmentConfig{sorts: map[string]string{}}}
}

// Index adds a searchable index.
func (b *segmentBuilder) Index(name, template string) *segmentBuilder {
	b.cfg.indexes = append(b.cfg.indexes, searchIndex{name: name, template: template})
	return b
}

// TypedIndex adds an index that needs an identifier type id from reference data.
func (b *segmentBuilder) TypedIndex(name, identifierType, template string) *segmentBuilder {
	b.cfg.indexes = append(b.cfg.indexes, searchIndex{name: name, template: template, identifierType: identifierType})
	return b
}

// Terms adds an exact-match filter group.
func (b *segmentBuilder) Terms(name, field string) *segmentBuilder {
	b.cfg.filters = append(b.cfg.filters, filterGroup{name: name, field: field, kind: filterTerms})
	return b
}

// DateRange adds a from:to date filter.
func (b *segmentBuilder) DateRange(name, field string) *segmentBuilder {
	b.cfg.filters = append(b.cfg.filters, filterGroup{name: name, field: field, kind: filterDateRange})
	return b
}

// Lookup adds a filter whose values are names resolved to ids through a reference table.
func (b *segmentBuilder) Lookup(name, field string, table refdata.Kind) *segmentBuilder {
	b.cfg.filters = append(b.cfg.filters, filterGroup{name: name, field: field, kind: filterLookup, table: table})
	return b
}

// Sort maps a sort key onto a CQL field.
func (b *segmentBuilder) Sort(key, field string) *segmentBuilder {
	b.cfg.sorts[key] = field
	return b
}

func (b *segmentBuilder) build() *segmentConfig {
	return &b.cfg
}

// instanceIndexes adds the indexes every segment shares.
func instanceIndexes(b *segmentBuilder) *segmentBuilder {
	return b.
		Index(IndexAll, `keyword all "{value}" or isbn="{value}" or hrid=="{value}" or id=="{value}"`).
		Index(IndexContributor, `contributors.name all "{value}"`).
		Index(IndexTitle, `title all "{value}"`).
		Index(IndexIdentifier, `identifiers.value=="{value}"`).
		TypedIndex(IndexISBN, refdata.IdentifierISBN, `identifiers =/@value/@identifierTypeId="{typeId}" "{value}"`).
		TypedIndex(IndexISSN, refdata.IdentifierISSN, `identifiers =/@value/@identifierTypeId="{typeId}" "{value}"`).
		Index(IndexSubject, `subjects all "{value}"`).
		Index(IndexHRID, `hrid=="{value}"`).
		Index(IndexID, `id=="{value}"`).
		Index(IndexQuerySearch, phValue)
}

func commonSorts(b *segmentBuilder) *segmentBuilder {
	return b.
		Sort("title", "title").
		Sort("contributors", "contributors").
		Sort("publishers", "publication").
		Sort("hrid", "hrid")
}

var segments = map[query.Segment]*segmentConfig{
	query.SegmentInstances: commonSorts(instanceIndexes(newSegment())).
		Terms("effectiveLocation", "items.effectiveLocationId").
		Lookup("location", "items.effectiveLocationId", refdata.KindLocations).
		Terms("language", "languages").
		Terms("resource", "instanceTypeId").
		Terms("format", "instanceFormatIds").
		Terms("mode", "modeOfIssuanceId").
		Terms("natureOfContent", "natureOfContentTermIds").
		Terms("staffSuppress", "staffSuppress").
		Terms("discoverySuppress", "discoverySuppress").
		Terms("source", "source").
		DateRange("createdDate", "metadata.createdDate").
		DateRange("updatedDate", "metadata.updatedDate").
		build(),

	query.SegmentHoldings: commonSorts(instanceIndexes(newSegment())).
		Index(IndexCallNumber, `holdingsRecords.fullCallNumber=="{value}"`).
		Index(IndexHoldingsHRID, `holdingsRecords.hrid=="{value}"`).
		Terms("effectiveLocation", "holdingsRecords.permanentLocationId").
		Lookup("location", "holdingsRecords.permanentLocationId", refdata.KindLocations).
		Terms("holdingsPermanentLocation", "holdingsRecords.permanentLocationId").
		Terms("language", "languages").
		Terms("source", "source").
		DateRange("createdDate", "metadata.createdDate").
		DateRange("updatedDate", "metadata.updatedDate").
		build(),

	query.SegmentItems: commonSorts(instanceIndexes(newSegment())).
		Index(IndexBarcode, `item.barcode=="{value}"`).
		Index(IndexItemHRID, `item.hrid=="{value}"`).
		Terms("effectiveLocation", "item.effectiveLocationId").
		Lookup("location", "item.effectiveLocationId", refdata.KindLocations).
		Terms("materialType", "item.materialTypeId").
		Terms("itemStatus", "item.status.name").
		Terms("language", "languages").
		DateRange("createdDate", "metadata.createdDate").
		DateRange("updatedDate", "metadata.updatedDate").
		build(),
}

// Indexes lists the searchable index names of seg in menu order.
func Indexes(seg query.Segment) []string {
	cfg, ok := segments[seg]
	if !ok {
		return nil
	}
	out := make([]string, len(cfg.indexes))
	for i, ix := range cfg.indexes {
		out[i] = ix.name
	}
	return out
}

// Filters lists the filter names seg understands.
func Filters(seg query.Segment) []string {
	cfg, ok := segments[seg]
	if !ok {
		return nil
	}
	out := make([]string, len(cfg.filters))
	for i, f := range cfg.filters {
		out[i] = f.name
	}
	return out
}
