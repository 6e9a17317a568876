// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// reportOptions are the arguments shared by every report tool.
func reportOptions(description string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithString("source", mcp.Description("Path to a question log file (date|question|score per line). Defaults to the configured source.")),
		mcp.WithString("text", mcp.Description("Literal question log text. Rows are parsed strictly; cannot be combined with source.")),
		mcp.WithString("today", mcp.Description("Reference date as YYYY-MM-DD. Defaults to the current date.")),
		mcp.WithNumber("days", mcp.Description("Number of days shown in the day view.")),
		mcp.WithNumber("months", mcp.Description("Number of months kept for the month view and statistics (1-12).")),
	}
}

// NewMCPServer initializes and configures the dailyq MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Daily Questions Report Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_day_view ---
	s.AddTool(mcp.NewTool("get_day_view",
		reportOptions("Score every question day by day over the recent window, with a normalized grade per question.")...,
	), h.handleGetDayView)

	// --- 2. Tool: get_month_view ---
	s.AddTool(mcp.NewTool("get_month_view",
		reportOptions("Build monthly calendars of the normalized daily score sums.")...,
	), h.handleGetMonthView)

	// --- 3. Tool: get_statistics ---
	s.AddTool(mcp.NewTool("get_statistics",
		reportOptions("Average the scores by weekday and by question over the month window.")...,
	), h.handleGetStatistics)

	// --- 4. Tool: get_trend ---
	s.AddTool(mcp.NewTool("get_trend",
		reportOptions("Fit a linear trend through the normalized daily scores of the month window.")...,
	), h.handleGetTrend)

	// --- 5. Tool: get_report ---
	s.AddTool(mcp.NewTool("get_report",
		reportOptions("Build every view at once: day view, month calendars, statistics and trend.")...,
	), h.handleGetReport)

	return s
}

// StartMCPServer starts the dailyq MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
