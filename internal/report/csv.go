package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"appresolve/internal/resolve"
)

// File names emitted into the output directory.
const (
	ConfirmedFile = "apps_master.csv"
	ReviewFile    = "needs_review.csv"
	AuditFile     = "candidates_raw.csv"
)

// Writer renders a run result into the three CSV reports.
type Writer struct {
	dir string
}

// NewWriter returns a writer rooted at dir. The directory must exist.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write persists all three reports. Each file is replaced atomically;
// on error the previous contents (if any) are left untouched.
func (w *Writer) Write(result *resolve.Result) error {
	if err := w.writeConfirmed(result.Confirmed); err != nil {
		return err
	}
	if err := w.writeReview(result.Review); err != nil {
		return err
	}
	return w.writeAudit(result.Audit)
}

func (w *Writer) writeConfirmed(rows []resolve.ConfirmedRow) error {
	header := []string{
		"app_key", "query_name", "trackId", "bundleId", "trackName",
		"sellerName", "primaryGenreName", "languageCodesISO2A", "releaseDate",
		"countries_found", "score_total", "score_breakdown",
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		breakdown, err := json.Marshal(row.Breakdown)
		if err != nil {
			return fmt.Errorf("encode breakdown: %w", err)
		}
		records = append(records, []string{
			row.AppKey,
			row.QueryName,
			strconv.FormatInt(row.TrackID, 10),
			row.BundleID,
			row.TrackName,
			row.SellerName,
			row.PrimaryGenre,
			strings.Join(row.LanguageCodes, ";"),
			row.ReleaseDate,
			strings.Join(row.Countries, ";"),
			formatScore(row.Breakdown.Total),
			string(breakdown),
		})
	}
	return w.writeFile(ConfirmedFile, header, records)
}

func (w *Writer) writeReview(rows []resolve.ReviewRow) error {
	header := []string{
		"app_key", "query_name", "rank", "trackId", "bundleId", "trackName",
		"sellerName", "primaryGenreName", "countries_found", "score_total",
		"score_breakdown",
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		breakdown, err := json.Marshal(row.Breakdown)
		if err != nil {
			return fmt.Errorf("encode breakdown: %w", err)
		}
		records = append(records, []string{
			row.AppKey,
			row.QueryName,
			strconv.Itoa(row.Rank),
			strconv.FormatInt(row.TrackID, 10),
			row.BundleID,
			row.TrackName,
			row.SellerName,
			row.PrimaryGenre,
			strings.Join(row.Countries, ";"),
			formatScore(row.Breakdown.Total),
			string(breakdown),
		})
	}
	return w.writeFile(ReviewFile, header, records)
}

func (w *Writer) writeAudit(rows []resolve.AuditRow) error {
	header := []string{
		"app_key", "query_name", "trackId", "bundleId", "trackName",
		"sellerName", "primaryGenreName", "countries_found",
		"exact", "startswith", "contains", "fuzzy",
		"dev_bonus", "bundle_bonus", "genre_bonus", "total",
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		b := row.Breakdown
		records = append(records, []string{
			row.AppKey,
			row.QueryName,
			strconv.FormatInt(row.TrackID, 10),
			row.BundleID,
			row.TrackName,
			row.SellerName,
			row.PrimaryGenre,
			strings.Join(row.Countries, ";"),
			formatScore(b.Exact),
			formatScore(b.StartsWith),
			formatScore(b.Contains),
			formatScore(b.Fuzzy),
			formatScore(b.DevBonus),
			formatScore(b.BundleBonus),
			formatScore(b.GenreBonus),
			formatScore(b.Total),
		})
	}
	return w.writeFile(AuditFile, header, records)
}

func (w *Writer) writeFile(name string, header []string, records [][]string) error {
	tmp, err := os.CreateTemp(w.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	cw := csv.NewWriter(tmp)
	if err := cw.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s header: %w", name, err)
	}
	if err := cw.WriteAll(records); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s rows: %w", name, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(w.dir, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
