package seeder

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"vietjobs-search/pkg/models"
)

// LoadFile reads a seed data file holding either a single JSON array or
// newline-delimited JSON. In NDJSON form, malformed lines are skipped and
// counted instead of aborting the load.
func LoadFile(path string) ([]models.JobDocument, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read seed file: %w", err)
	}

	// Whole-file JSON first: either a bare array or {"docs": [...]}.
	var docs []models.JobDocument
	if err := json.Unmarshal(raw, &docs); err == nil {
		return docs, 0, nil
	}
	var wrapped struct {
		Docs []models.JobDocument `json:"docs"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Docs != nil {
		return wrapped.Docs, 0, nil
	}

	// Fall back to NDJSON. A failed array decode can leave elements it
	// parsed before the error behind, so start from a clean slate.
	docs = nil
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 1024*1024), 4*1024*1024)

	parseFailures := 0
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var doc models.JobDocument
		if err := json.Unmarshal(line, &doc); err != nil {
			parseFailures++
			continue
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, parseFailures, fmt.Errorf("scan seed file: %w", err)
	}

	return docs, parseFailures, nil
}
