package roster

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"

	"github.com/gridiron-labs/roster-scout/internal/config"
	"github.com/gridiron-labs/roster-scout/internal/model"
	"github.com/gridiron-labs/roster-scout/internal/normalize"
	"github.com/gridiron-labs/roster-scout/internal/retry"
)

// Loader fetches the master roster and builds the session Index.
// Every failure degrades to an empty index: the search continues
// without contact enrichment rather than aborting.
type Loader struct {
	cfg     config.RosterConfig
	norm    *normalize.Normalizer
	aliases map[string]string
	client  *http.Client
	limiter *rate.Limiter
}

// NewLoader creates a roster loader.
func NewLoader(cfg config.RosterConfig, norm *normalize.Normalizer, aliases map[string]string) *Loader {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 1
	}
	return &Loader{
		cfg:     cfg,
		norm:    norm,
		aliases: aliases,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSec), 1),
	}
}

// Load syncs the remote roster export into the local fallback file,
// then indexes whatever local copy exists. Never returns a nil index.
func (l *Loader) Load(ctx context.Context) *Index {
	idx := NewIndex(l.norm, l.aliases)

	if l.cfg.URL != "" {
		if err := l.Sync(ctx); err != nil {
			zap.L().Warn("roster: sync failed, using local copy", zap.Error(err))
		}
	}

	records, err := l.readLocal()
	if err != nil {
		zap.L().Warn("roster: load failed, continuing without enrichment", zap.Error(err))
		return idx
	}

	for _, rec := range records {
		idx.Add(rec)
	}
	zap.L().Info("roster: indexed",
		zap.Int("records", len(records)),
		zap.Int("names", idx.Len()),
	)
	return idx
}

var errBusyUpstream = eris.New("roster: upstream busy")

// Sync downloads the remote roster export over the configured local
// file. Transient fetch failures are retried with backoff. The write
// is atomic: a partial download never clobbers a usable local copy.
func (l *Loader) Sync(ctx context.Context) error {
	if l.cfg.URL == "" {
		return eris.New("roster: no url configured")
	}

	policy := retry.Policy{
		Attempts: 3,
		Base:     time.Second,
		Retryable: func(err error) bool {
			return retry.Transient(err) || eris.Is(err, errBusyUpstream)
		},
	}
	return retry.Do(ctx, policy, l.syncOnce)
}

func (l *Loader) syncOnce(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "roster: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.URL, nil)
	if err != nil {
		return eris.Wrap(err, "roster: build request")
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "roster: fetch")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if retry.StatusRetryable(resp.StatusCode) {
			return eris.Wrapf(errBusyUpstream, "roster: fetch returned %d", resp.StatusCode)
		}
		return eris.Errorf("roster: fetch returned %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.cfg.File), ".roster-*")
	if err != nil {
		return eris.Wrap(err, "roster: create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return eris.Wrap(err, "roster: write download")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "roster: close temp file")
	}
	if err := os.Rename(tmp.Name(), l.cfg.File); err != nil {
		return eris.Wrap(err, "roster: replace local file")
	}

	zap.L().Info("roster: synced from remote", zap.String("file", l.cfg.File))
	return nil
}

// readLocal parses the local roster file (CSV or XLSX) into records.
func (l *Loader) readLocal() ([]model.MasterRecord, error) {
	path := l.cfg.File
	if path == "" {
		return nil, eris.New("roster: no local file configured")
	}

	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readXLSXRows(path)
	} else {
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, eris.Errorf("roster: %s has no data rows", path)
	}

	header := rows[0]
	sample := rows[1:]
	if len(sample) > 20 {
		sample = sample[:20]
	}

	cols, ok := DetectColumns(header, sample)
	if !ok {
		return nil, eris.Errorf("roster: could not locate school/name columns in %s", path)
	}

	var records []model.MasterRecord
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cols.Get(row, FieldFirstName) + " " + cols.Get(row, FieldLastName))
		if name == "" {
			continue
		}
		records = append(records, model.MasterRecord{
			School:  cols.Get(row, FieldSchool),
			Name:    name,
			Title:   cols.Get(row, FieldTitle),
			Email:   cols.Get(row, FieldEmail),
			Twitter: cols.Get(row, FieldTwitter),
		})
	}
	return records, nil
}

func readCSVRows(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "roster: read %s", path)
	}
	if !utf8.Valid(data) {
		decoded, _, decErr := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if decErr != nil {
			return nil, eris.Wrapf(decErr, "roster: decode %s", path)
		}
		data = decoded
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			zap.L().Warn("roster: skipping malformed row", zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "roster: open %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("roster: %s has no sheets", path)
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
