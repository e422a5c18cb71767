package listing

import (
	"strings"

	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/refdata"
)

// Row is one formatted line of the instance result list.
type Row struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Contributors    string `json:"contributors"`
	Publishers      string `json:"publishers"`
	PublicationDate string `json:"publicationDate"`
	Relation        string `json:"relation"`
}

// ItemRow is one line of a holdings record's item list.
type ItemRow struct {
	ID           string `json:"id"`
	Barcode      string `json:"barcode"`
	Status       string `json:"status"`
	MaterialType string `json:"materialType"`
}

const missingStatus = "--"

// FormatRow renders an instance for the result list.
func FormatRow(r domain.Record, ref refdata.Tables) Row {
	return Row{
		ID:              r.ID(),
		Title:           r.String("title"),
		Contributors:    contributors(r),
		Publishers:      publishers(r),
		PublicationDate: publicationDates(r),
		Relation:        relations(r, ref.InstanceRelationshipTypes),
	}
}

// FormatItem renders an item for the holdings item list.
func FormatItem(r domain.Record) ItemRow {
	status := r.Path("status.name")
	if status == "" {
		status = missingStatus
	}
	return ItemRow{
		ID:           r.ID(),
		Barcode:      r.String("barcode"),
		Status:       status,
		MaterialType: r.Path("materialType.name"),
	}
}

func contributors(r domain.Record) string {
	var names []string
	for _, c := range r.Objects("contributors") {
		if n := c.String("name"); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, "; ")
}

func publishers(r domain.Record) string {
	pubs := r.Objects("publication")
	out := make([]string, 0, len(pubs))
	for _, p := range pubs {
		s := p.String("publisher")
		if d := p.String("dateOfPublication"); d != "" {
			s += " (" + d + ")"
		}
		out = append(out, s)
	}
	return strings.Join(out, ", ")
}

func publicationDates(r domain.Record) string {
	pubs := r.Objects("publication")
	out := make([]string, 0, len(pubs))
	for _, p := range pubs {
		out = append(out, p.String("dateOfPublication"))
	}
	return strings.Join(out, ", ")
}

// relations names the relationship types linking r to parent and child instances.
func relations(r domain.Record, types refdata.Table) string {
	seen := make(map[string]bool)
	var names []string
	for _, list := range []string{"parentInstances", "childInstances"} {
		for _, link := range r.Objects(list) {
			t, ok := types.ByID(link.String("instanceRelationshipTypeId"))
			if !ok || seen[t.Name] {
				continue
			}
			seen[t.Name] = true
			names = append(names, t.Name)
		}
	}
	return strings.Join(names, ", ")
}
