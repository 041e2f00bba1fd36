package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []map[string]string
	}{
		{
			name:  "basic rows",
			input: "title,location\nPitch Night,Berlin\nAI Summit,Online\n",
			want: []map[string]string{
				{"title": "Pitch Night", "location": "Berlin"},
				{"title": "AI Summit", "location": "Online"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "header only",
			input: "title,location\n",
			want:  nil,
		},
		{
			name:  "headers trimmed",
			input: " title , location \nPitch Night,Berlin\n",
			want: []map[string]string{
				{"title": "Pitch Night", "location": "Berlin"},
			},
		},
		{
			name:  "short row leaves trailing fields absent",
			input: "title,location,url\nPitch Night,Berlin\n",
			want: []map[string]string{
				{"title": "Pitch Night", "location": "Berlin"},
			},
		},
		{
			name:  "long row drops extras",
			input: "title,location\nPitch Night,Berlin,extra,fields\n",
			want: []map[string]string{
				{"title": "Pitch Night", "location": "Berlin"},
			},
		},
		{
			name:  "fully empty rows skipped",
			input: "title,location\n,\nPitch Night,Berlin\n  ,  \n",
			want: []map[string]string{
				{"title": "Pitch Night", "location": "Berlin"},
			},
		},
		{
			name:  "quoted fields with commas",
			input: "title,description\nSummit,\"Big event, free entry\"\n",
			want: []map[string]string{
				{"title": "Summit", "description": "Big event, free entry"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCSV(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("parseCSV() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseCSV() returned %d rows, want %d", len(got), len(tt.want))
			}
			for i, wantRow := range tt.want {
				for k, v := range wantRow {
					if got[i][k] != v {
						t.Errorf("row %d %q = %q, want %q", i, k, got[i][k], v)
					}
				}
			}
		})
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	content := "title,date\nDemo Day,2026-10-01\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	src := NewFileSource(path)
	if src.Name() != path {
		t.Errorf("Name() = %q, want %q", src.Name(), path)
	}

	rows, err := src.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows() error: %v", err)
	}
	if len(rows) != 1 || rows[0]["title"] != "Demo Day" {
		t.Errorf("Rows() = %v", rows)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := NewFileSource("/nonexistent/events.csv")
	if _, err := src.Rows(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	if err := os.WriteFile(good, []byte("title\nFirst\nSecond\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	alsoGood := filepath.Join(dir, "also.csv")
	if err := os.WriteFile(alsoGood, []byte("title\nThird\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	sources := []Source{
		NewFileSource(good),
		NewFileSource(filepath.Join(dir, "missing.csv")),
		NewFileSource(alsoGood),
	}

	raw, failed := LoadAll(context.Background(), sources)

	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if len(raw) != 3 {
		t.Fatalf("LoadAll() returned %d rows, want 3", len(raw))
	}

	// Failed sources still consume their index so synthetic ids stay stable
	if raw[0].SourceIndex != 0 || raw[2].SourceIndex != 2 {
		t.Errorf("source indexes = %d, %d; want 0 and 2", raw[0].SourceIndex, raw[2].SourceIndex)
	}
	if raw[0].RowIndex != 0 || raw[1].RowIndex != 1 {
		t.Errorf("row indexes = %d, %d; want 0 and 1", raw[0].RowIndex, raw[1].RowIndex)
	}
}
