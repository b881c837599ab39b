package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/hangarlog/core/codec"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/internal/logging"
	"github.com/huangsam/hangarlog/internal/outwriter"
	"github.com/huangsam/hangarlog/internal/parquet"
	"github.com/huangsam/hangarlog/schema"
)

const parquetExt = ".parquet"

// exportFormat maps the configured output to an export format. Text exports as CSV.
func exportFormat(output schema.OutputMode) schema.OutputMode {
	switch output {
	case schema.JSONOut, schema.ParquetOut:
		return output
	default:
		return schema.CSVOut
	}
}

// ExportPath returns where an export is written: the configured output file,
// or the conventional export name in the working directory.
func ExportPath(cfg *contract.Config, now time.Time) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	name := schema.ExportFileName(now)
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + string(exportFormat(cfg.Output))
}

// Export writes every entry, newest first, and returns the path and entry count.
func Export(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, now time.Time) (string, int, error) {
	entries, err := loadEntries(ctx, mgr)
	if err != nil {
		return "", 0, err
	}

	path := ExportPath(cfg, now)
	format := exportFormat(cfg.Output)
	if format == schema.ParquetOut {
		if err := parquet.WriteEntriesParquet(entries, path); err != nil {
			return "", 0, err
		}
		return path, len(entries), nil
	}

	exportCfg := cfg.Clone()
	exportCfg.Output = format
	exportCfg.OutputFile = path
	if err := outwriter.WriteEntries(entries, exportCfg); err != nil {
		return "", 0, err
	}
	return path, len(entries), nil
}

// Import adds the entries of a CSV export to the logbook.
// Rows that fail to parse or are already present are reported and skipped;
// the rest are stored in one transaction.
func Import(ctx context.Context, mgr contract.StoreManager, text string, now time.Time) (schema.ImportResult, error) {
	existing, err := loadEntries(ctx, mgr)
	if err != nil {
		return schema.ImportResult{}, err
	}
	return storeImport(ctx, mgr, codec.ImportText(text, existing), now)
}

// ImportFile imports a CSV or Parquet export from path.
func ImportFile(ctx context.Context, mgr contract.StoreManager, path string, now time.Time) (schema.ImportResult, error) {
	if !strings.EqualFold(filepath.Ext(path), parquetExt) {
		data, err := os.ReadFile(path)
		if err != nil {
			return schema.ImportResult{}, fmt.Errorf("failed to read import file: %w", err)
		}
		return Import(ctx, mgr, string(data), now)
	}

	rows, err := parquet.ReadEntriesParquet(path)
	if err != nil {
		return schema.ImportResult{}, err
	}
	existing, err := loadEntries(ctx, mgr)
	if err != nil {
		return schema.ImportResult{}, err
	}
	return storeImport(ctx, mgr, codec.Import(recordsOf(rows), existing), now)
}

// recordsOf turns entries into import records so they pass the same checks as CSV rows.
func recordsOf(entries []schema.Entry) []map[string]string {
	records := make([]map[string]string, len(entries))
	for i, e := range entries {
		fields := codec.EntryFields(e)
		rec := make(map[string]string, len(codec.Header))
		for j, col := range codec.Header {
			rec[col] = fields[j]
		}
		records[i] = rec
	}
	return records
}

// storeImport stamps creation times in file order and stores the accepted entries.
func storeImport(ctx context.Context, mgr contract.StoreManager, result schema.ImportResult, now time.Time) (schema.ImportResult, error) {
	if len(result.Entries) == 0 {
		return result, nil
	}
	for i := range result.Entries {
		result.Entries[i].CreatedAt = now.Add(time.Duration(i))
	}
	if err := mgr.GetEntryStore().InsertBatch(ctx, result.Entries); err != nil {
		return schema.ImportResult{}, fmt.Errorf("failed to store imported entries: %w", err)
	}
	logging.Info("import finished", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// GetPhoto returns the photo at the 1-based index of the entry identified by ref.
func GetPhoto(ctx context.Context, mgr contract.StoreManager, ref string, index int) ([]byte, string, error) {
	entry, _, err := resolveStored(ctx, mgr, ref)
	if err != nil {
		return nil, "", err
	}
	if index < 1 || index > len(entry.Photos) {
		return nil, "", fmt.Errorf("%w: entry %s has %d photos, asked for #%d",
			schema.ErrBlobNotFound, entry.ID, len(entry.Photos), index)
	}
	key := entry.Photos[index-1]
	data, err := blobsOf(mgr).Load(ctx, key)
	if err != nil {
		return nil, key, fmt.Errorf("failed to load photo %s: %w", key, err)
	}
	return data, key, nil
}
