package queryset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"appresolve/internal/resolve"
)

// LoadNames reads one query name per line. Blank lines are skipped and the
// app key defaults to the query name itself.
func LoadNames(path string) ([]resolve.Query, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open names file: %w", err)
	}
	defer file.Close()

	var queries []resolve.Query
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		queries = append(queries, resolve.Query{AppKey: name, QueryName: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read names file: %w", err)
	}
	if len(queries) == 0 {
		return nil, errors.New("names file contains no queries")
	}
	return queries, nil
}

// LoadCSV reads the hint table. Recognized columns are app_key,
// query_name, developer_hint, bundle_hint, plus any column whose name
// begins with "alias" (case-insensitive), contributing aliases in column
// order. Rows without a query name are skipped; a missing app_key falls
// back to the query name.
func LoadCSV(path string) ([]resolve.Query, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	var aliasColumns []int
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, exists := columns[key]; !exists {
			columns[key] = i
		}
		if strings.HasPrefix(key, "alias") {
			aliasColumns = append(aliasColumns, i)
		}
	}
	if _, ok := columns["query_name"]; !ok {
		return nil, fmt.Errorf("csv header missing query_name column (columns: %s)", strings.Join(header, ", "))
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var queries []resolve.Query
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		queryName := field(row, "query_name")
		if queryName == "" {
			continue
		}

		var aliases []string
		for _, idx := range aliasColumns {
			if idx >= len(row) {
				continue
			}
			if alias := strings.TrimSpace(row[idx]); alias != "" {
				aliases = append(aliases, alias)
			}
		}

		appKey := field(row, "app_key")
		if appKey == "" {
			appKey = queryName
		}

		queries = append(queries, resolve.Query{
			AppKey:        appKey,
			QueryName:     queryName,
			Aliases:       aliases,
			DeveloperHint: field(row, "developer_hint"),
			BundleHint:    field(row, "bundle_hint"),
		})
	}
	if len(queries) == 0 {
		return nil, errors.New("csv file contains no queries")
	}
	return queries, nil
}
