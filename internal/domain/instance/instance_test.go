package instance

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/refdata"
)

func mustRecord(t *testing.T, raw string) domain.Record {
	t.Helper()
	var r domain.Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return r
}

func TestPrepareCopy(t *testing.T) {
	src := mustRecord(t, `{"id":"x","hrid":"h1","precedingTitles":[{"id":"p1","title":"A"}],"source":"MARC"}`)

	got := PrepareCopy(src)

	want := domain.Record{
		"precedingTitles": []any{map[string]any{"title": "A"}},
		"source":          "FOLIO",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PrepareCopy mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got["id"]; ok {
		t.Error("id must be dropped")
	}
	if _, ok := got["hrid"]; ok {
		t.Error("hrid must be dropped")
	}
}

func TestPrepareCopy_KeepsOrderAndAttributes(t *testing.T) {
	src := mustRecord(t, `{
		"id": "x",
		"title": "Main",
		"succeedingTitles": [
			{"id": "s1", "title": "B", "hrid": "in2"},
			{"id": "s2", "title": "C", "identifiers": [{"value": "1234"}]}
		],
		"precedingTitles": []
	}`)

	got := PrepareCopy(src)

	want := domain.Record{
		"title": "Main",
		"succeedingTitles": []any{
			map[string]any{"title": "B", "hrid": "in2"},
			map[string]any{"title": "C", "identifiers": []any{map[string]any{"value": "1234"}}},
		},
		"precedingTitles": []any{},
		"source":          "FOLIO",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PrepareCopy mismatch (-want +got):\n%s", diff)
	}
}

func TestPrepareCopy_DoesNotMutateSource(t *testing.T) {
	src := mustRecord(t, `{"id":"x","hrid":"h1","precedingTitles":[{"id":"p1","title":"A"}],"source":"MARC"}`)
	before := mustRecord(t, `{"id":"x","hrid":"h1","precedingTitles":[{"id":"p1","title":"A"}],"source":"MARC"}`)

	_ = PrepareCopy(src)

	if diff := cmp.Diff(before, src); diff != "" {
		t.Errorf("source mutated (-before +after):\n%s", diff)
	}
}

func TestPrepareCopy_Nil(t *testing.T) {
	got := PrepareCopy(nil)
	if got.String("source") != SourceFolio {
		t.Errorf("source = %q", got.String("source"))
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	for _, key := range []string{"discoverySuppress", "staffSuppress", "previouslyHeld"} {
		if b, ok := d.Bool(key); !ok || b {
			t.Errorf("%s = %v, %v; want false", key, b, ok)
		}
	}
	if d.String("source") != "FOLIO" {
		t.Errorf("source = %q", d.String("source"))
	}
}

func TestMarshal_TitleLinks(t *testing.T) {
	ref := refdata.Tables{IdentifierTypes: refdata.Table{
		{ID: "isbn-type", Name: "ISBN"},
		{ID: "issn-type", Name: "ISSN"},
	}}
	form := mustRecord(t, `{
		"title": "Main",
		"precedingTitles": [{"id": "p1", "title": "A", "hrid": "in1", "isbn": "978-0", "issn": "1234-5678"}],
		"succeedingTitles": [{"title": "B"}]
	}`)

	got := Marshal(form, ref)

	want := domain.Record{
		"title": "Main",
		"precedingTitles": []any{map[string]any{
			"title":               "A",
			"hrid":                "in1",
			"precedingInstanceId": "p1",
			"identifiers": []any{
				map[string]any{"identifierTypeId": "isbn-type", "value": "978-0"},
				map[string]any{"identifierTypeId": "issn-type", "value": "1234-5678"},
			},
		}},
		"succeedingTitles": []any{map[string]any{"title": "B", "identifiers": []any{}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Marshal mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_MissingIdentifierTypeSkipped(t *testing.T) {
	ref := refdata.Tables{IdentifierTypes: refdata.Table{{ID: "issn-type", Name: "ISSN"}}}
	form := mustRecord(t, `{"precedingTitles": [{"title": "A", "isbn": "978-0", "issn": "1"}]}`)

	got := Marshal(form, ref)

	links := got.Objects("precedingTitles")
	if len(links) != 1 {
		t.Fatalf("links = %v", links)
	}
	ids := links[0].Objects("identifiers")
	if len(ids) != 1 || ids[0].String("identifierTypeId") != "issn-type" {
		t.Errorf("identifiers = %v", ids)
	}
}
