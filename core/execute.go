package core

import (
	"context"
	"fmt"
	"os"

	"github.com/huangsam/hangarlog/core/algo"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/internal/outwriter"
	"github.com/huangsam/hangarlog/schema"
)

// ExecuteAdd stores a new entry and prints it with its registration history.
func ExecuteAdd(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, req AddRequest) error {
	entry, err := AddEntry(ctx, mgr, contract.NewConfigLocator(cfg), req)
	if err != nil {
		return err
	}
	detail, err := ShowEntry(ctx, mgr, entry.ID.String())
	if err != nil {
		return err
	}
	return outwriter.WriteEntryDetail(detail, cfg)
}

// ExecuteEdit updates an entry and prints the result.
func ExecuteEdit(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, ref string, patch EntryPatch) error {
	entry, err := EditEntry(ctx, mgr, ref, patch)
	if err != nil {
		return err
	}
	detail, err := ShowEntry(ctx, mgr, entry.ID.String())
	if err != nil {
		return err
	}
	return outwriter.WriteEntryDetail(detail, cfg)
}

// ExecuteDelete removes one entry.
func ExecuteDelete(ctx context.Context, _ *contract.Config, mgr contract.StoreManager, ref string) error {
	entry, err := DeleteEntry(ctx, mgr, ref)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %s (%s).\n", entry.Registration, entry.ID)
	return nil
}

// ExecutePurge removes every entry.
func ExecutePurge(ctx context.Context, _ *contract.Config, mgr contract.StoreManager) error {
	removed, err := PurgeEntries(ctx, mgr)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d entries.\n", removed)
	return nil
}

// ExecuteShow prints one entry with its registration history.
func ExecuteShow(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, ref string) error {
	detail, err := ShowEntry(ctx, mgr, ref)
	if err != nil {
		return err
	}
	return outwriter.WriteEntryDetail(detail, cfg)
}

// ExecuteList prints the logbook listing.
func ExecuteList(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, filter schema.EntryFilter) error {
	entries, err := ListEntries(ctx, mgr, filter, cfg.Now(), cfg.ResultLimit)
	if err != nil {
		return err
	}
	return outwriter.WriteEntries(entries, cfg)
}

// ExecuteInsight prints the history of a registration.
func ExecuteInsight(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, registration string) error {
	insight, err := RegistrationInsight(ctx, mgr, registration)
	if err != nil {
		return err
	}
	return outwriter.WriteInsight(registration, insight, cfg)
}

// ExecuteCheck prints whether a pending entry looks like a duplicate.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, c algo.Candidate) error {
	check, err := CheckDuplicate(ctx, mgr, c)
	if err != nil {
		return err
	}
	return outwriter.WriteDuplicateCheck(check, cfg)
}

// ExecuteStats prints the highlights and leaderboards.
func ExecuteStats(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	report, err := Stats(ctx, mgr, cfg.Now(), cfg.ResultLimit)
	if err != nil {
		return err
	}
	return outwriter.WriteStats(report, cfg)
}

// ExecuteOverview prints the headline numbers.
func ExecuteOverview(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	overview, err := Overview(ctx, mgr, cfg.Now())
	if err != nil {
		return err
	}
	return outwriter.WriteOverview(overview, cfg)
}

// ExecuteExport writes the whole logbook to a file.
func ExecuteExport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	path, count, err := Export(ctx, cfg, mgr, cfg.Now())
	if err != nil {
		return err
	}
	if exportFormat(cfg.Output) == schema.ParquetOut {
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", path)
	}
	fmt.Printf("Exported %d entries.\n", count)
	return nil
}

// ExecuteImport imports an export file and prints the outcome.
func ExecuteImport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, path string) error {
	result, err := ImportFile(ctx, mgr, path, cfg.Now())
	if err != nil {
		return err
	}
	return outwriter.WriteImportResult(result, cfg)
}

// ExecutePhotoGet saves one photo of an entry to the output file, or to a
// file named after its key in the working directory.
func ExecutePhotoGet(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, ref string, index int) error {
	data, key, err := GetPhoto(ctx, mgr, ref, index)
	if err != nil {
		return err
	}
	path := cfg.OutputFile
	if path == "" {
		path = key
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write photo: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Saved photo to %s\n", path)
	return nil
}
