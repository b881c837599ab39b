package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/core"
	"github.com/huangsam/hangarlog/core/algo"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/patrickmn/go-cache"
)

// snapshotTTL is how long a loaded logbook is reused across tool calls.
const snapshotTTL = 2 * time.Second

const snapshotKey = "entries"

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg   *contract.Config
	mgr       contract.StoreManager
	snapshots *cache.Cache
}

// snapshot returns the logbook, newest first. Callers must not modify it.
func (h *toolHandler) snapshot(ctx context.Context) ([]schema.Entry, error) {
	if cached, ok := h.snapshots.Get(snapshotKey); ok {
		return cached.([]schema.Entry), nil
	}
	entries, err := h.mgr.GetEntryStore().QueryAll(ctx, schema.NewestFirst)
	if err != nil {
		return nil, err
	}
	h.snapshots.Set(snapshotKey, entries, cache.DefaultExpiration)
	return entries, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetRegistrationInsight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	registration := algo.NormalizeRegistration(request.GetString("registration", ""))
	if registration == "" {
		return mcp.NewToolResultError(algo.ErrEmptyRegistration.Error()), nil
	}

	entries, err := h.snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load entries: %v", err)), nil
	}

	insight := algo.InsightFor(registration, entries, uuid.Nil)
	return jsonResult(struct {
		Registration string `json:"registration"`
		schema.RegistrationInsight
	}{registration, insight}), nil
}

func (h *toolHandler) handleCheckDuplicate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	candidate := algo.Candidate{
		Registration: request.GetString("registration", ""),
		LocationName: strings.TrimSpace(request.GetString("location_name", "")),
	}
	if algo.NormalizeRegistration(candidate.Registration) == "" {
		return mcp.NewToolResultError(algo.ErrEmptyRegistration.Error()), nil
	}
	when, err := contract.ParseEntryTime(request.GetString("date_time", ""), cfg.Now(), cfg.Location)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	candidate.DateTime = when

	entries, err := h.snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load entries: %v", err)), nil
	}
	return jsonResult(core.DuplicateCheckOf(candidate, entries)), nil
}

func (h *toolHandler) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	limit := algo.DefaultTopLimit
	if l := request.GetInt("limit", 0); l > 0 {
		limit = l
	}

	entries, err := h.snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load entries: %v", err)), nil
	}
	return jsonResult(algo.Highlights(entries, cfg.Now(), limit)), nil
}

func (h *toolHandler) handleListEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	filter, err := contract.ParseEntryFilter(
		request.GetString("mode", ""),
		request.GetString("period", ""),
		request.GetString("search", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid filter: %v", err)), nil
	}

	entries, err := h.snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load entries: %v", err)), nil
	}
	return jsonResult(core.SelectEntries(entries, filter, cfg.Now(), cfg.ResultLimit)), nil
}
