package search

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/merchantlab/consult-go/domain/knowledge"
)

// LoadDir indexes the document collections under dir. Each category
// lives in <category>.json holding an array of documents; files that
// do not name a known category are skipped.
func LoadDir(s *MemorySearcher, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read knowledge dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		category := knowledge.Category(strings.TrimSuffix(entry.Name(), ".json"))
		if !category.Valid() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read collection %s: %w", category, err)
		}
		var docs []knowledge.Document
		if err := json.Unmarshal(data, &docs); err != nil {
			return fmt.Errorf("parse collection %s: %w", category, err)
		}
		for i := range docs {
			docs[i].Category = category
		}
		if err := s.Index(docs...); err != nil {
			return err
		}
	}
	return nil
}
