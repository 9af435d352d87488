// Package loader reads a local snapshot of work items from a .agf
// directory. One JSON record per line; kinds may be mixed in one file. The
// loader is a producer only — it hands raw records to the normalizer and
// never filters or sorts.
package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/RobboC1980/AGF-sub000/pkg/model"
	"github.com/RobboC1980/AGF-sub000/pkg/normalize"
)

// FindSnapshotPath locates the entities JSONL file in the given directory.
// Prefers entities.jsonl (canonical) over items.jsonl (legacy fallback).
// Skips backup and merge artifacts.
func FindSnapshotPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read snapshot directory: %w", err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".jsonl") {
			continue
		}
		if strings.Contains(name, ".backup") || strings.Contains(name, ".orig") || strings.Contains(name, ".merge") {
			continue
		}
		candidates = append(candidates, name)
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("no entities JSONL file found in %s", dir)
	}

	for _, preferred := range []string{"entities.jsonl", "items.jsonl"} {
		for _, name := range candidates {
			if name != preferred {
				continue
			}
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && info.Size() > 0 {
				return path, nil
			}
		}
	}

	// Fall back to the first non-empty candidate.
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return path, nil
		}
	}

	return filepath.Join(dir, candidates[0]), nil
}

// LoadEntities reads entities from the .agf directory under repoPath,
// defaulting to the current working directory.
func LoadEntities(repoPath string, log *zap.Logger) ([]model.BaseEntity, error) {
	if repoPath == "" {
		var err error
		repoPath, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
	}

	path, err := FindSnapshotPath(filepath.Join(repoPath, ".agf"))
	if err != nil {
		return nil, err
	}
	return LoadEntitiesFromFile(path, log)
}

// LoadEntitiesFromFile reads entities from a specific JSONL file.
// Malformed lines are skipped and logged, never fatal; a single bad record
// must not take down the whole refresh.
func LoadEntitiesFromFile(path string, log *zap.Logger) ([]model.BaseEntity, error) {
	if log == nil {
		log = zap.NewNop()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open entities file: %w", err)
	}
	defer file.Close()

	var entities []model.BaseEntity
	scanner := bufio.NewScanner(file)
	// Records can be large (long descriptions), so widen the line buffer.
	const maxCapacity = 1024 * 1024 * 10 // 10MB
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	skipped := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if lineNum == 1 {
			line = stripBOM(line)
		}

		e, err := normalize.Record(json.RawMessage(line), model.KindTask)
		if err != nil {
			skipped++
			log.Warn("skipping malformed entity record",
				zap.String("path", path),
				zap.Int("line", lineNum),
				zap.Error(err))
			continue
		}
		entities = append(entities, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read entities file: %w", err)
	}

	if skipped > 0 {
		log.Info("loaded entity snapshot with skips",
			zap.String("path", path),
			zap.Int("loaded", len(entities)),
			zap.Int("skipped", skipped))
	}
	return entities, nil
}

// stripBOM removes the UTF-8 byte order mark if present.
func stripBOM(b []byte) []byte {
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		return b[3:]
	}
	return b
}
