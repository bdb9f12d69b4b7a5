package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/jward/namepop/internal/store"
)

// Raw year files are named yobNNNN.txt, one per calendar year.
var yearFilePattern = regexp.MustCompile(`^yob(\d{4})\.txt$`)

// MatchYearFile reports the year encoded in a raw data file name, and
// whether the name follows the yobNNNN.txt convention at all.
func MatchYearFile(name string) (int, bool) {
	m := yearFilePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// LoadDirectory loads every yobNNNN.txt file in dir, in year order. A file
// in dir that does not match the naming convention is an error, as is a
// fatal row error or an already loaded year; the failing year is rolled
// back and no later year is attempted.
func LoadDirectory(s *store.Store, logger *zap.Logger, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("load directory: %w", err)
	}

	type yearFile struct {
		year int
		path string
	}
	var files []yearFile
	for _, entry := range entries {
		if entry.IsDir() {
			return fmt.Errorf("load directory: unexpected subdirectory %q", entry.Name())
		}
		year, ok := MatchYearFile(entry.Name())
		if !ok {
			return fmt.Errorf("load directory: unexpected entry %q", entry.Name())
		}
		files = append(files, yearFile{year: year, path: filepath.Join(dir, entry.Name())})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].year < files[j].year })

	for _, f := range files {
		summary, err := LoadYearFile(s, f.year, f.path)
		if err != nil {
			return err
		}
		logger.Info("loaded year",
			zap.Int("year", summary.Year),
			zap.Int("names", summary.Names),
			zap.Int("total_males", summary.TotalMales),
			zap.Int("total_females", summary.TotalFemales),
		)
	}
	return nil
}
