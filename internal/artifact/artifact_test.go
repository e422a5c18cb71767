package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 0, time.FixedZone("CET", 3600))

	got := FileName(PrefixCQLQuery, ts, "cql")
	if got != "SearchInstanceCQLQuery2024-03-05T14:07:09+01:00.cql" {
		t.Errorf("FileName() = %q", got)
	}
}

func TestCSV(t *testing.T) {
	a, err := CSV("x.csv", []string{"Barcode", "Title"}, [][]string{
		{"3900", `Moby "Dick"`},
		{"3901", "a,b"},
	})
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	want := "Barcode,Title\n3900,\"Moby \"\"Dick\"\"\"\n3901,\"a,b\"\n"
	if string(a.Body) != want {
		t.Errorf("body = %q, want %q", a.Body, want)
	}
	if a.ContentType != ContentTypeCSV {
		t.Errorf("content type = %q", a.ContentType)
	}
}

func TestCSV_NoHeader(t *testing.T) {
	a, err := CSV("ids.csv", nil, [][]string{{"1"}, {"2"}})
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if string(a.Body) != "1\n2\n" {
		t.Errorf("body = %q", a.Body)
	}
}

func TestDirSink_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink, err := NewDirSink(dir)
	if err != nil {
		t.Fatalf("NewDirSink: %v", err)
	}

	path, err := sink.Save(context.Background(), Text("q.cql", "cql.allRecords=1"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "cql.allRecords=1" {
		t.Errorf("content = %q", data)
	}
}

func TestDirSink_RejectsPaths(t *testing.T) {
	sink, err := NewDirSink(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirSink: %v", err)
	}
	for _, name := range []string{"", "../escape.csv", "sub/dir.csv"} {
		if _, err := sink.Save(context.Background(), Text(name, "x")); err == nil {
			t.Errorf("Save(%q) should fail", name)
		}
	}
}
