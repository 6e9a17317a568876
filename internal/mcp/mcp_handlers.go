package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dailyq/dailyq/core"
	"github.com/dailyq/dailyq/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// requestConfig clones the base config and applies the request arguments.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateReport(cfg, contract.ReportOverrides{
		Source: request.GetString("source", ""),
		Text:   request.GetString("text", ""),
		Today:  request.GetString("today", ""),
		Days:   request.GetInt("days", 0),
		Months: request.GetInt("months", 0),
	})
	return cfg, err
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// failureResult turns a report error into a tool error.
func failureResult(what string, err error) *mcp.CallToolResult {
	if errors.Is(err, contract.ErrEmptyResult) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", what, err))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", what, err))
}

func (h *toolHandler) handleGetDayView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}
	view, _, err := core.GetDayViewResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return failureResult("day view", err), nil
	}
	return jsonResult(view)
}

func (h *toolHandler) handleGetMonthView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}
	view, _, err := core.GetMonthViewResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return failureResult("month view", err), nil
	}
	return jsonResult(view)
}

func (h *toolHandler) handleGetStatistics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}
	stats, _, err := core.GetStatisticsResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return failureResult("statistics", err), nil
	}
	return jsonResult(stats)
}

func (h *toolHandler) handleGetTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}
	result, _, err := core.GetTrendResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return failureResult("trend", err), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}
	report, _, err := core.GetReportResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return failureResult("report", err), nil
	}
	return jsonResult(report)
}
