package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tailscale/hujson"
	"go.uber.org/zap"

	"symbol-mapper/internal/core"
)

// Info is the per-root configuration record providing vendor aliasing and
// class metadata.
type Info struct {
	Alias            string `json:"Alias"`
	Market           string `json:"Market"`
	Underlying       string `json:"Underlying"`
	SecurityType     string `json:"SecurityType"`
	TickerSuffix     string `json:"TickerSuffix"`
	RootLookupSuffix string `json:"RootLookupSuffix"`
}

// Table holds the alias/override records keyed by root symbol. It is
// immutable after load and safe for unsynchronized concurrent reads.
type Table struct {
	byRoot  map[string]entry
	byAlias map[string]string
}

type entry struct {
	root string
	info Info
}

// Load reads a mapping document from path. A missing file yields an empty
// table; a present but malformed one is a config error.
func Load(path string, logger *zap.Logger) (*Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("mapping file absent, using empty table", zap.String("path", path))
			return Parse(nil)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrBadMappingConfig, err)
	}
	table, err := Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Info("symbol mapping loaded", zap.String("path", path), zap.Int("roots", table.Len()))
	return table, nil
}

// Parse decodes a UTF-8 JSON mapping document. Line and block comments are
// stripped before decoding. Empty input yields an empty table.
func Parse(data []byte) (*Table, error) {
	table := &Table{
		byRoot:  make(map[string]entry),
		byAlias: make(map[string]string),
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return table, nil
	}
	standardized, err := hujson.Standardize(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBadMappingConfig, err)
	}
	var records map[string]Info
	if err := json.Unmarshal(standardized, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBadMappingConfig, err)
	}
	for root, info := range records {
		root = strings.TrimSpace(root)
		if root == "" {
			return nil, fmt.Errorf("%w: empty root symbol", core.ErrBadMappingConfig)
		}
		key := strings.ToUpper(root)
		if _, ok := table.byRoot[key]; ok {
			return nil, fmt.Errorf("%w: duplicate root %q", core.ErrBadMappingConfig, root)
		}
		table.byRoot[key] = entry{root: root, info: info}
		alias := strings.ToUpper(strings.TrimSpace(info.Alias))
		if alias != "" && alias != key {
			table.byAlias[alias] = root
		}
	}
	return table, nil
}

// Lookup returns the record for root, matching case-insensitively.
func (t *Table) Lookup(root string) (Info, bool) {
	e, ok := t.byRoot[strings.ToUpper(strings.TrimSpace(root))]
	if !ok {
		return Info{}, false
	}
	return e.info, true
}

// CanonicalRoot returns the case-preserved root as configured, or the
// trimmed input when no record exists.
func (t *Table) CanonicalRoot(root string) string {
	if e, ok := t.byRoot[strings.ToUpper(strings.TrimSpace(root))]; ok {
		return e.root
	}
	return strings.TrimSpace(root)
}

// RootForAlias translates a vendor alias back to its internal root.
func (t *Table) RootForAlias(alias string) (string, bool) {
	key := strings.ToUpper(strings.TrimSpace(alias))
	if root, ok := t.byAlias[key]; ok {
		return root, true
	}
	if e, ok := t.byRoot[key]; ok {
		return e.root, true
	}
	return "", false
}

func (t *Table) Len() int {
	return len(t.byRoot)
}
