// Package shard reads the bio corpus one file-sized partition at a
// time, keeping peak memory bounded to a single shard.
package shard

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/gridiron-labs/roster-scout/internal/model"
)

// bioColumns are the accepted names for the free-text bio column,
// matched case-insensitively after trimming.
var bioColumns = []string{"bio", "full_bio", "description", "full bio"}

// Shard is one loaded partition of the corpus.
type Shard struct {
	Path    string
	Records []model.BioRecord
}

// Discover lists the CSV shard files under dir in stable name order.
// A missing or empty directory returns an empty slice, not an error;
// "no database files found" is a user-facing message upstream.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "shard: read dir %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Read loads one shard. Scraped feeds are usually UTF-8 but some
// carry Windows-1252 bytes; on invalid UTF-8 the file is re-decoded
// through the Latin-1 superset. Malformed rows are skipped and
// logged, never fatal.
func Read(path string) (*Shard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "shard: read %s", path)
	}

	if !utf8.Valid(data) {
		decoded, _, decErr := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if decErr != nil {
			return nil, eris.Wrapf(decErr, "shard: decode %s", path)
		}
		data = decoded
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "shard: read header %s", path)
	}

	cols, ok := resolveColumns(header)
	if !ok {
		return nil, eris.Errorf("shard: no bio column in %s", path)
	}

	s := &Shard{Path: path}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			zap.L().Warn("shard: skipping malformed row",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}
		rec := cols.record(row)
		if rec.FullBio == "" {
			continue
		}
		s.Records = append(s.Records, rec)
	}

	return s, nil
}

// columnMap holds resolved column positions; -1 means absent.
type columnMap struct {
	bio, name, school, title, email, twitter int
}

func resolveColumns(header []string) (columnMap, bool) {
	cols := columnMap{bio: -1, name: -1, school: -1, title: -1, email: -1, twitter: -1}

	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		switch {
		case cols.bio == -1 && isBioColumn(key):
			cols.bio = i
		case key == "name":
			cols.name = i
		case key == "school":
			cols.school = i
		case key == "title":
			cols.title = i
		case key == "email":
			cols.email = i
		case key == "twitter":
			cols.twitter = i
		}
	}

	return cols, cols.bio != -1
}

func isBioColumn(key string) bool {
	for _, c := range bioColumns {
		if key == c {
			return true
		}
	}
	return false
}

func (c columnMap) record(row []string) model.BioRecord {
	get := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	return model.BioRecord{
		Name:    get(c.name),
		School:  get(c.school),
		Title:   get(c.title),
		Email:   get(c.email),
		Twitter: get(c.twitter),
		FullBio: get(c.bio),
	}
}
