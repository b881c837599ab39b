// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/patrickmn/go-cache"
)

// NewMCPServer initializes and configures the HangarLog MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"HangarLog Logbook Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:   baseCfg,
		mgr:       mgr,
		snapshots: cache.New(snapshotTTL, 2*snapshotTTL),
	}

	// --- 1. Tool: get_registration_insight ---
	s.AddTool(mcp.NewTool("get_registration_insight",
		mcp.WithDescription("Report how many times an aircraft registration was logged and where it was seen last."),
		mcp.WithString("registration", mcp.Description("Aircraft registration, e.g. 'G-XLEA'. Case and surrounding spaces are ignored."), mcp.Required()),
	), h.handleGetRegistrationInsight)

	// --- 2. Tool: check_duplicate ---
	s.AddTool(mcp.NewTool("check_duplicate",
		mcp.WithDescription("Check whether a pending sighting repeats an entry already in the logbook (same registration and location within two hours)."),
		mcp.WithString("registration", mcp.Description("Aircraft registration of the pending entry."), mcp.Required()),
		mcp.WithString("location_name", mcp.Description("Where the aircraft was seen.")),
		mcp.WithString("date_time", mcp.Description("When it was seen: RFC3339, 'YYYY-MM-DD HH:MM' or 'N hours ago'. Defaults to now.")),
	), h.handleCheckDuplicate)

	// --- 3. Tool: get_stats ---
	s.AddTool(mcp.NewTool("get_stats",
		mcp.WithDescription("Compute logbook highlights: entries this year and month, unique registrations, current streak and leaderboards."),
		mcp.WithNumber("limit", mcp.Description("Maximum leaderboard length. Defaults to 10.")),
	), h.handleGetStats)

	// --- 4. Tool: list_entries ---
	s.AddTool(mcp.NewTool("list_entries",
		mcp.WithDescription("List logbook entries, newest first."),
		mcp.WithString("mode", mcp.Description("Restrict to one entry mode."), mcp.Enum("all", "spotted", "flown")),
		mcp.WithString("period", mcp.Description("Restrict to the current calendar month or year."), mcp.Enum("all", "month", "year")),
		mcp.WithString("search", mcp.Description("Case-insensitive text matched against registration, operator, aircraft type and location.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of entries returned.")),
	), h.handleListEntries)

	return s
}

// StartMCPServer starts the HangarLog MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
