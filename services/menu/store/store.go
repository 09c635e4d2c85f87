package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"hudsmenu-backend/services/menu"

	_ "embed"
)

// The baseline pair ships inside the binary so a freshly provisioned
// environment can serve reads before the first scrape ever runs.
//
//go:embed baseline/week.json
var baselineWeek []byte

//go:embed baseline/status.json
var baselineStatus []byte

const (
	weekFile   = "week.json"
	statusFile = "status.json"
)

type FileStore struct {
	dir string
}

func NewFileStore(dir string) (FileStore, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return FileStore{}, err
	}
	return FileStore{dir: dir}, nil
}

// Save replaces both documents wholesale. Writes go through a temp file
// + rename so a concurrent reader sees either the old or the new
// document, never a torn one.
func (s FileStore) Save(ctx context.Context, doc menu.WeekDocument, status menu.StatusRecord) error {
	weekRaw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	statusRaw, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return err
	}

	return errors.Join(
		writeAtomic(filepath.Join(s.dir, weekFile), weekRaw),
		writeAtomic(filepath.Join(s.dir, statusFile), statusRaw),
	)
}

func (s FileStore) Load(ctx context.Context) (menu.WeekDocument, menu.StatusRecord, error) {
	var doc menu.WeekDocument
	err := readOrBaseline(ctx, filepath.Join(s.dir, weekFile), baselineWeek, &doc)
	if err != nil {
		return menu.WeekDocument{}, menu.StatusRecord{}, err
	}

	var status menu.StatusRecord
	err = readOrBaseline(ctx, filepath.Join(s.dir, statusFile), baselineStatus, &status)
	if err != nil {
		return menu.WeekDocument{}, menu.StatusRecord{}, err
	}

	return doc, status, nil
}

func readOrBaseline(ctx context.Context, path string, baseline []byte, out any) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return json.Unmarshal(baseline, out)
	}
	if err != nil {
		return err
	}
	err = json.Unmarshal(raw, out)
	if err != nil {
		// an unreadable cache must not take down the read path
		slog.WarnContext(ctx, "cache file corrupted, serving baseline", "path", path, "err", err)
		return json.Unmarshal(baseline, out)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	err := os.WriteFile(tmp, data, 0644)
	if err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

var _ menu.Store = FileStore{}
