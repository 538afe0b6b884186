package bioinfodb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bioinfo-lab/bioinfodb/domain/model"
)

// CollectFiles expands paths into the list of loadable files. Directories are
// walked recursively and only files with a supported extension are kept; a file
// named explicitly must be supported. Each file appears once.
//
// Files in one directory that differ only in compression, such as "x.csv" and
// "x.csv.gz", are twins: only one is returned, preferring the uncompressed file.
// Any other pair of files that would load into the same table is rejected with
// ErrDuplicateTableName.
func CollectFiles(paths []string) ([]string, error) {
	var collected []string
	seen := make(map[string]bool)

	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			return nil, errors.New("bioinfodb: path cannot be empty")
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("bioinfodb: stat %s: %w", path, err)
		}

		if info.IsDir() {
			if err := collectDirectory(path, seen, &collected); err != nil {
				return nil, err
			}
			continue
		}

		if !model.IsSupportedFile(path) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		if err := addUnique(path, seen, &collected); err != nil {
			return nil, err
		}
	}
	return resolveTableNames(collected)
}

func collectDirectory(dir string, seen map[string]bool, collected *[]string) error {
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !model.IsSupportedFile(path) {
			return nil
		}
		return addUnique(path, seen, collected)
	})
	if err != nil {
		return fmt.Errorf("bioinfodb: walk %s: %w", dir, err)
	}
	return nil
}

func addUnique(path string, seen map[string]bool, collected *[]string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("bioinfodb: absolute path of %s: %w", path, err)
	}
	if !seen[abs] {
		seen[abs] = true
		*collected = append(*collected, path)
	}
	return nil
}

// resolveTableNames keeps one file of each twin group and checks that the
// remaining files derive distinct table names. Table names are compared
// case-insensitively, as SQLite does. The input order is kept.
func resolveTableNames(files []string) ([]string, error) {
	var result []string
	twins := make(map[string]int)
	tables := make(map[string]string)

	for _, f := range files {
		key := twinKey(f)
		if i, ok := twins[key]; ok {
			if isCompressed(result[i]) && !isCompressed(f) {
				tables[tableKey(f)] = f
				result[i] = f
			}
			continue
		}

		name := tableKey(f)
		if existing, ok := tables[name]; ok {
			return nil, fmt.Errorf("%w: table %q from files %s and %s",
				ErrDuplicateTableName, model.TableNameFromPath(f), existing, f)
		}
		tables[name] = f
		twins[key] = len(result)
		result = append(result, f)
	}
	return result, nil
}

func isCompressed(path string) bool {
	return model.DetectCompressionType(path) != model.CompressionNone
}

// twinKey is the absolute path without its compression extension.
func twinKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	ext := model.DetectCompressionType(path).Extension()
	return path[:len(path)-len(ext)]
}

// tableKey is the table name a file loads into, folded to lower case.
func tableKey(path string) string {
	return strings.ToLower(model.TableNameFromPath(path))
}
