package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/inventory/internal/domain/filter"
	"github.com/kailas-cloud/inventory/internal/domain/query"
	listinguc "github.com/kailas-cloud/inventory/internal/usecase/listing"
)

// Search returns one page of instances matching q. A non-positive limit
// means the default page size; limits above the maximum are capped.
func (c *Client) Search(ctx context.Context, q Query, offset, limit int) (_ Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	sq, err := toInternalQuery(q)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	page, err := c.listing.Search(ctx, sq, offset, limit)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	return fromInternalPage(page), nil
}

// CQL renders q as the CQL expression the backend would be sent.
func (c *Client) CQL(ctx context.Context, q Query) (_ string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("cql", start, err) }()

	sq, err := toInternalQuery(q)
	if err != nil {
		return "", fmt.Errorf("cql: %w", err)
	}
	expr, err := c.listing.CQL(ctx, sq)
	if err != nil {
		return "", fmt.Errorf("cql: %w", err)
	}
	return expr, nil
}

func toInternalQuery(q Query) (query.SearchQuery, error) {
	seg, err := query.ParseSegment(string(q.Segment))
	if err != nil {
		return query.SearchQuery{}, err
	}
	pairs := make([]filter.Pair, 0, len(q.Filters))
	for _, f := range q.Filters {
		pairs = append(pairs, filter.Pair{Name: f.Name, Values: f.Values})
	}
	return query.SearchQuery{
		Segment: seg,
		QIndex:  q.Index,
		Query:   q.Term,
		Filters: filter.New(pairs...),
		Sort:    q.Sort,
	}, nil
}

func fromInternalPage(p listinguc.SearchPage) Page {
	rows := make([]Row, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = Row(r)
	}
	return Page{
		Rows:      rows,
		Total:     p.TotalRecords,
		Offset:    p.Offset,
		Limit:     p.Limit,
		NextLimit: p.NextLimit,
		CQL:       p.CQL,
	}
}
