package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/core/algo"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
)

// ListEntries returns the entries matching the filter, newest first.
// A positive limit truncates the result.
func ListEntries(ctx context.Context, mgr contract.StoreManager, filter schema.EntryFilter, now time.Time, limit int) ([]schema.Entry, error) {
	entries, err := loadEntries(ctx, mgr)
	if err != nil {
		return nil, err
	}
	return SelectEntries(entries, filter, now, limit), nil
}

// SelectEntries filters a snapshot, sorts it newest first and truncates it
// to a positive limit. The snapshot is left untouched.
func SelectEntries(entries []schema.Entry, filter schema.EntryFilter, now time.Time, limit int) []schema.Entry {
	matched := algo.FilterEntries(entries, filter, now)
	algo.SortNewestFirst(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// DetailOf pairs an entry with the history of its registration in entries.
func DetailOf(entry schema.Entry, entries []schema.Entry) schema.EntryDetail {
	insight := algo.InsightFor(entry.Registration, entries, entry.ID)
	return schema.EntryDetail{
		Entry:     entry,
		Insight:   insight,
		TimesSeen: insight.Count + 1,
	}
}

// ShowEntry returns the entry identified by ref with its registration history.
func ShowEntry(ctx context.Context, mgr contract.StoreManager, ref string) (schema.EntryDetail, error) {
	entry, entries, err := resolveStored(ctx, mgr, ref)
	if err != nil {
		return schema.EntryDetail{}, err
	}
	return DetailOf(entry, entries), nil
}

// RegistrationInsight returns how often a registration has been logged.
func RegistrationInsight(ctx context.Context, mgr contract.StoreManager, registration string) (schema.RegistrationInsight, error) {
	entries, err := loadEntries(ctx, mgr)
	if err != nil {
		return schema.RegistrationInsight{}, err
	}
	return algo.InsightFor(registration, entries, uuid.Nil), nil
}

// CheckDuplicate reports whether a pending entry would trigger the duplicate warning.
func CheckDuplicate(ctx context.Context, mgr contract.StoreManager, c algo.Candidate) (schema.DuplicateCheck, error) {
	entries, err := loadEntries(ctx, mgr)
	if err != nil {
		return schema.DuplicateCheck{}, err
	}
	return DuplicateCheckOf(c, entries), nil
}

// DuplicateCheckOf runs the duplicate check for c against entries.
func DuplicateCheckOf(c algo.Candidate, entries []schema.Entry) schema.DuplicateCheck {
	check := schema.DuplicateCheck{
		Registration: algo.NormalizeRegistration(c.Registration),
		Insight:      algo.InsightFor(c.Registration, entries, uuid.Nil),
	}
	if match, ok := algo.FindDuplicate(c, entries, uuid.Nil); ok {
		m := match.Clone()
		check.IsDuplicate = true
		check.Match = &m
	}
	return check
}

// Stats returns the highlights and leaderboards at now.
func Stats(ctx context.Context, mgr contract.StoreManager, now time.Time, limit int) (schema.StatsReport, error) {
	entries, err := loadEntries(ctx, mgr)
	if err != nil {
		return schema.StatsReport{}, err
	}
	return algo.Highlights(entries, now, limit), nil
}

// Overview returns the headline numbers at now.
func Overview(ctx context.Context, mgr contract.StoreManager, now time.Time) (schema.Overview, error) {
	entries, err := loadEntries(ctx, mgr)
	if err != nil {
		return schema.Overview{}, err
	}
	return algo.BuildOverview(entries, now), nil
}
