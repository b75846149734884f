package api

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/scriptorivm/orthograph/pkg/kit"
)

// RegisterMCPTools registers the orthograph MCP tools on the server. They
// dispatch to the same endpoints the HTTP routes use.
func RegisterMCPTools(srv *server.MCPServer, pv Provider, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	eps := newEndpoints(pv, logger)
	registerNormalizeText(srv, eps)
	registerExplainWord(srv, eps)
	registerBackendInfo(srv, eps)
	registerRulesetInfo(srv, eps)
}

func registerNormalizeText(srv *server.MCPServer, eps *endpoints) {
	tool := mcp.NewTool("normalize_text",
		mcp.WithDescription("Normalize Latin text: correct long-s OCR artifacts (eft -> est) and restore the u/v distinction (uirumque -> virumque)."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The Latin text to normalize")),
		mcp.WithString("mode", mcp.Description("Normalization mode: full (default), uv, vu or longs")),
		mcp.WithBoolean("pass2", mcp.Description("Override the probabilistic long-s pass for this call")),
	)

	kit.RegisterMCPTool(srv, tool, eps.normalize, func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		r := &normalizeRequest{}
		r.Text, _ = args["text"].(string)
		r.Mode, _ = args["mode"].(string)
		if v, ok := args["pass2"].(bool); ok {
			r.Pass2 = &v
		}
		return r, nil
	})
}

func registerExplainWord(srv *server.MCPServer, eps *endpoints) {
	tool := mcp.NewTool("explain_word",
		mcp.WithDescription("Normalize a Latin word or passage and report every applied rule with its position and context."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The word or passage to explain")),
		mcp.WithString("mode", mcp.Description("Explain mode: full (default), uv or longs")),
	)

	kit.RegisterMCPTool(srv, tool, eps.explain, func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		r := &explainRequest{}
		r.Text, _ = args["text"].(string)
		r.Mode, _ = args["mode"].(string)
		return r, nil
	})
}

func registerBackendInfo(srv *server.MCPServer, eps *endpoints) {
	tool := mcp.NewTool("backend_info",
		mcp.WithDescription("Report which normalization engine is serving (reference or turbo) and why it was selected."),
	)

	kit.RegisterMCPTool(srv, tool, eps.backend, func(_ mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}

func registerRulesetInfo(srv *server.MCPServer, eps *endpoints) {
	tool := mcp.NewTool("ruleset_info",
		mcp.WithDescription("Report the loaded rule bundle: version, table sizes, allowlist size and pass 2 threshold."),
	)

	kit.RegisterMCPTool(srv, tool, eps.rulesetInfo, func(_ mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}
