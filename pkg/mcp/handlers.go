package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hellenic-development/figma-claude/pkg/formatter"
	"github.com/hellenic-development/figma-claude/pkg/protocol"
	"github.com/hellenic-development/figma-claude/pkg/session"
)

// screenSummary is a screen without its image, which is too large for a tool result.
type screenSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Description string  `json:"description"`
	ImageBytes  int     `json:"imageBytes"`
	HasCode     bool    `json:"hasCode"`
}

// run handles one request and returns its replies. A plugin failure or an error
// reply becomes a tool error result.
func (s *Server) run(ctx context.Context, kind protocol.Kind) (*protocol.Recorder, *mcp.CallToolResult) {
	rec := &protocol.Recorder{}
	if err := s.plugin.Handle(ctx, protocol.Request{Kind: kind}, rec); err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	if reply, ok := rec.Last(protocol.TypeError); ok {
		return nil, mcp.NewToolResultError(reply.Message)
	}
	if s.logger != nil {
		s.logger.Infof("%s: %d replies", kind, len(rec.Replies))
	}
	return rec, nil
}

func (s *Server) handleExtractSelected(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, errResult := s.run(ctx, protocol.ExtractSelected)
	if errResult != nil {
		return errResult, nil
	}

	reply, ok := rec.Last(protocol.TypeExtractionCompleted)
	if !ok {
		return mcp.NewToolResultError("extraction did not complete"), nil
	}
	screens, _ := reply.Data.([]session.Screen)

	out := make([]screenSummary, 0, len(screens))
	for _, sc := range screens {
		out = append(out, screenSummary{
			ID:          sc.ID,
			Name:        sc.Name,
			Type:        sc.Type,
			Width:       sc.Width,
			Height:      sc.Height,
			Description: sc.Description,
			ImageBytes:  len(sc.Image),
			HasCode:     sc.CSSCode != "",
		})
	}
	return jsonResult(out)
}

func (s *Server) handleExtractStyles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, errResult := s.run(ctx, protocol.ExtractStyles)
	if errResult != nil {
		return errResult, nil
	}

	reply, ok := rec.Last(protocol.TypeStylesExtractionCompleted)
	if !ok {
		return mcp.NewToolResultError("style extraction did not complete"), nil
	}
	return jsonResult(reply.Data)
}

func (s *Server) handleGenerateDocumentation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, errResult := s.run(ctx, protocol.GenerateDocumentation)
	if errResult != nil {
		return errResult, nil
	}

	reply, ok := rec.Last(protocol.TypeDocumentationGenerated)
	if !ok {
		return mcp.NewToolResultError("documentation was not generated"), nil
	}
	return mcp.NewToolResultText(reply.Markdown), nil
}

func (s *Server) handleExportClaude(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := req.GetString("format", formatter.FormatJSON)

	rec, errResult := s.run(ctx, protocol.ExportClaude)
	if errResult != nil {
		return errResult, nil
	}

	reply, ok := rec.Last(protocol.TypeClaudeExportReady)
	if !ok {
		return mcp.NewToolResultError("export was not produced"), nil
	}
	export, ok := reply.Data.(*formatter.ClaudeExport)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unexpected export payload %T", reply.Data)), nil
	}

	data, err := formatter.EncodeExport(export, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
