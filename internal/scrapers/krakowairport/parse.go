package krakowairport

import (
	"context"
	"io"
	"krkarrivals/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ParseArrivals reads the first <table> of an HTML document, every <tr> with at
// least FieldCount <td> cells becomes an Arrival, the rest of the rows
// (headers, section titles) are dropped.
//
// A document without a table is not an error, it simply has no arrivals.
func ParseArrivals(ctx context.Context, r io.Reader) ([]Arrival, error) {
	_, span := tracer.Start(ctx, "ParseArrivals")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	arrivals, dropped := parseTable(doc.Find("table").First())

	span.SetAttributes(
		attribute.Int("arrivals", len(arrivals)),
		attribute.Int("dropped_rows", dropped),
	)
	return arrivals, nil
}

func parseTable(table *goquery.Selection) (arrivals []Arrival, dropped int) {
	arrivals = []Arrival{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := htmlutil.GetTrimmedTexts(row.Find("td"))
		if len(cells) < FieldCount {
			dropped++
			return
		}
		arrivals = append(arrivals, Arrival{
			Time:        cells[0],
			Destination: cells[1],
			Flight:      cells[2],
			Status:      cells[3],
		})
	})
	return arrivals, dropped
}
