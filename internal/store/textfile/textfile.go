// Package textfile implements the deskbook stores on flat text files.
//
// Each record is one line of comma-separated fields encoded with
// encoding/csv, so values survive a round trip even when they contain
// commas or quotes. Rewrites go through a temp file and rename; the
// transaction store appends instead because its records are immutable.
// Lines that fail to parse are skipped and logged, never fatal.
package textfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// record is one parsed line of a store file.
type record struct {
	line   int
	fields []string
}

// readRecords parses a store file into one record per non-blank line.
// A missing file yields no records. Unparseable lines are skipped and
// logged at warn level with their 1-based line number.
func readRecords(fs afero.Fs, path string, log zerolog.Logger) ([]record, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var records []record
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields, err := parseLine(line)
		if err != nil {
			log.Warn().Str("path", path).Int("line", i+1).Err(err).Msg("skipping malformed line")
			continue
		}
		records = append(records, record{line: i + 1, fields: fields})
	}
	return records, nil
}

func parseLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	return r.Read()
}

// writeRecords replaces the file contents atomically.
func writeRecords(fs afero.Fs, path string, records [][]string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}

	return fs.Rename(tmp, path)
}

// appendRecord adds a single record to the end of the file, creating it
// if needed.
func appendRecord(fs afero.Fs, path string, fields []string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
