// Package analysis implements tabular.Analyzer: free-form questions
// answered by a language model over a store's sales table.
package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Table is one store's tabular dataset.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Render writes the table as pipe-separated text for prompts. Rows
// beyond limit are elided with a count.
func (t *Table) Render(limit int) string {
	if limit <= 0 || limit > len(t.Rows) {
		limit = len(t.Rows)
	}

	b := &strings.Builder{}
	b.WriteString(strings.Join(t.Columns, " | "))
	b.WriteString("\n")
	for _, row := range t.Rows[:limit] {
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}
	if limit < len(t.Rows) {
		fmt.Fprintf(b, "... (%d more rows)\n", len(t.Rows)-limit)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Dataset holds per-store sales tables. Safe for concurrent use.
type Dataset struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{tables: make(map[string]*Table)}
}

// LoadCSV reads a store's table from CSV. The first row is the header.
func (d *Dataset) LoadCSV(storeID string, r io.Reader) error {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return fmt.Errorf("read sales csv for %s: %w", storeID, err)
	}
	if len(records) < 1 {
		return fmt.Errorf("sales csv for %s is empty", storeID)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[storeID] = &Table{
		Columns: records[0],
		Rows:    records[1:],
	}
	return nil
}

// LoadDir loads every CSV file in dir. The file name without the
// extension is the store identifier.
func (d *Dataset) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read sales dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		storeID := strings.TrimSuffix(entry.Name(), ".csv")
		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("open sales csv: %w", err)
		}
		err = d.LoadCSV(storeID, f)
		_ = f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// Table returns the store's table, or nil.
func (d *Dataset) Table(storeID string) *Table {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tables[storeID]
}
