package queryset_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"appresolve/internal/queryset"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadNamesSkipsBlankLines(t *testing.T) {
	path := writeFile(t, "names.txt", "Period Tracker\n\n  \nルナルナ\n")

	queries, err := queryset.LoadNames(path)
	if err != nil {
		t.Fatalf("LoadNames: %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("expected two queries, got %d", len(queries))
	}
	if queries[0].AppKey != "Period Tracker" || queries[0].QueryName != "Period Tracker" {
		t.Fatalf("unexpected query: %+v", queries[0])
	}
	if queries[1].QueryName != "ルナルナ" {
		t.Fatalf("unexpected query: %+v", queries[1])
	}
	if len(queries[0].Aliases) != 0 || queries[0].BundleHint != "" {
		t.Fatalf("names input must not carry hints: %+v", queries[0])
	}
}

func TestLoadNamesRejectsEmptyFile(t *testing.T) {
	path := writeFile(t, "names.txt", "\n\n")
	if _, err := queryset.LoadNames(path); err == nil {
		t.Fatal("expected error for empty names file")
	}
}

func TestLoadCSVDetectsAliasColumns(t *testing.T) {
	content := "app_key,query_name,developer_hint,bundle_hint,Alias_1,ALIAS_2\n" +
		"flo,Flo Period Tracker,Flo Health,com.flo.app,Flo,My Flo\n" +
		",Clue,,com.clue.app,,\n"
	path := writeFile(t, "queries.csv", content)

	queries, err := queryset.LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("expected two queries, got %d", len(queries))
	}

	first := queries[0]
	if first.AppKey != "flo" || first.DeveloperHint != "Flo Health" || first.BundleHint != "com.flo.app" {
		t.Fatalf("unexpected first query: %+v", first)
	}
	if !reflect.DeepEqual(first.Aliases, []string{"Flo", "My Flo"}) {
		t.Fatalf("unexpected aliases: %v", first.Aliases)
	}

	second := queries[1]
	if second.AppKey != "Clue" {
		t.Fatalf("app_key should fall back to query name: %+v", second)
	}
	if len(second.Aliases) != 0 {
		t.Fatalf("empty alias cells must be dropped: %v", second.Aliases)
	}
}

func TestLoadCSVSkipsRowsWithoutQueryName(t *testing.T) {
	content := "query_name,alias_1\nFlo,\n,orphan alias\n"
	path := writeFile(t, "queries.csv", content)

	queries, err := queryset.LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(queries) != 1 || queries[0].QueryName != "Flo" {
		t.Fatalf("unexpected queries: %+v", queries)
	}
}

func TestLoadCSVToleratesRaggedRows(t *testing.T) {
	content := "query_name,developer_hint,alias_1\nFlo\nClue,BioWink\n"
	path := writeFile(t, "queries.csv", content)

	queries, err := queryset.LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("expected two queries, got %d", len(queries))
	}
	if queries[1].DeveloperHint != "BioWink" {
		t.Fatalf("unexpected second query: %+v", queries[1])
	}
}

func TestLoadCSVRequiresQueryNameColumn(t *testing.T) {
	path := writeFile(t, "queries.csv", "name,alias_1\nFlo,\n")
	if _, err := queryset.LoadCSV(path); err == nil {
		t.Fatal("expected error for missing query_name column")
	}
}
