package listing

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/inventory/internal/domain"
)

func record(t *testing.T, raw string) domain.Record {
	t.Helper()
	var r domain.Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return r
}

func TestFormatRow(t *testing.T) {
	r := record(t, `{
		"id": "in1",
		"title": "Moby Dick",
		"contributors": [{"name": "Melville, Herman"}, {"name": "Kent, Rockwell"}],
		"publication": [
			{"publisher": "Harper", "dateOfPublication": "1851"},
			{"publisher": "Bentley"}
		],
		"parentInstances": [{"instanceRelationshipTypeId": "rel-series"}],
		"childInstances": [
			{"instanceRelationshipTypeId": "rel-multipart"},
			{"instanceRelationshipTypeId": "rel-series"},
			{"instanceRelationshipTypeId": "unknown"}
		]
	}`)

	want := Row{
		ID:              "in1",
		Title:           "Moby Dick",
		Contributors:    "Melville, Herman; Kent, Rockwell",
		Publishers:      "Harper (1851), Bentley",
		PublicationDate: "1851, ",
		Relation:        "monographic series, multipart monograph",
	}
	if diff := cmp.Diff(want, FormatRow(r, testTables())); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatRow_Sparse(t *testing.T) {
	got := FormatRow(domain.Record{"id": "x"}, testTables())
	if diff := cmp.Diff(Row{ID: "x"}, got); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatItem(t *testing.T) {
	got := FormatItem(record(t, `{"id":"it1","barcode":"3900","status":{"name":"Available"},"materialType":{"name":"book"}}`))
	want := ItemRow{ID: "it1", Barcode: "3900", Status: "Available", MaterialType: "book"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("item mismatch (-want +got):\n%s", diff)
	}

	if got := FormatItem(domain.Record{"id": "it2"}); got.Status != "--" {
		t.Errorf("missing status should render as --, got %q", got.Status)
	}
}
