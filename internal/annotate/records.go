package annotate

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// Record is one annotator decision
type Record struct {
	Sentence string
	Username string
	Keep     string
	Index    int
}

var header = []string{"sentence", "username", "keep", "index"}

// ReadRecords parses a filtering CSV
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeIO, "failed to parse annotation csv")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}
	for _, h := range header {
		if _, ok := cols[h]; !ok {
			return nil, tterr.Newf(tterr.CodeIO, "annotation csv lacks column %q", h)
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		index, err := strconv.Atoi(row[cols["index"]])
		if err != nil {
			return nil, tterr.Wrap(err, tterr.CodeIO, "invalid index in annotation csv")
		}
		records = append(records, Record{
			Sentence: row[cols["sentence"]],
			Username: row[cols["username"]],
			Keep:     row[cols["keep"]],
			Index:    index,
		})
	}
	return records, nil
}

// WriteRecords writes records as CSV with a header row
func WriteRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return tterr.Wrap(err, tterr.CodeIO, "failed to write annotation csv")
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Sentence, r.Username, r.Keep, strconv.Itoa(r.Index)}); err != nil {
			return tterr.Wrap(err, tterr.CodeIO, "failed to write annotation csv")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return tterr.Wrap(err, tterr.CodeIO, "failed to write annotation csv")
	}
	return nil
}

// Merge combines earlier and new decisions. Records for the same sentence
// and index are folded into one, joining usernames and answers with ", ".
// Groups keep the order of their first appearance.
func Merge(previous, current []Record) []Record {
	type key struct {
		sentence string
		index    int
	}

	pos := make(map[key]int)
	var merged []Record
	for _, r := range append(append([]Record(nil), previous...), current...) {
		k := key{r.Sentence, r.Index}
		if i, ok := pos[k]; ok {
			merged[i].Username += ", " + r.Username
			merged[i].Keep += ", " + r.Keep
			continue
		}
		pos[k] = len(merged)
		merged = append(merged, r)
	}
	return merged
}

// Save merges records into the CSV at path, creating it when missing
func Save(path string, records []Record) ([]Record, error) {
	var previous []Record
	if f, err := os.Open(path); err == nil {
		previous, err = ReadRecords(f)
		f.Close()
		if err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, tterr.Wrap(err, tterr.CodeIO, "failed to open annotation csv").WithDetail("path", path)
	}

	merged := Merge(previous, records)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, tterr.Wrap(err, tterr.CodeIO, "failed to create directory").WithDetail("path", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeIO, "failed to create annotation csv").WithDetail("path", path)
	}
	if err := WriteRecords(f, merged); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, tterr.Wrap(err, tterr.CodeIO, "failed to close annotation csv").WithDetail("path", path)
	}
	return merged, nil
}
