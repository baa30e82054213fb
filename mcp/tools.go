package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names
const (
	ToolFindBestMatch  = "find_best_match"
	ToolRankCandidates = "rank_candidates"
)

// RegisterTools registers all srcmatch MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	if h == nil {
		h = NewHandlerSet(nil)
	}

	s.AddTool(mcp.NewTool(ToolFindBestMatch,
		append([]mcp.ToolOption{mcp.WithDescription("Find the candidate file a code snippet most likely came from, using TF-IDF cosine similarity")},
			candidateOptions(mcp.WithNumber("top",
				mcp.Description("Number of ranked candidates returned with the best match (default: 10)")))...)...,
	), h.HandleFindBestMatch)

	s.AddTool(mcp.NewTool(ToolRankCandidates,
		append([]mcp.ToolOption{mcp.WithDescription("Rank every candidate file by TF-IDF cosine similarity to a code snippet")},
			candidateOptions(mcp.WithNumber("top",
				mcp.Description("Limit the ranking to the first N candidates, 0 = all (default: 0)")))...)...,
	), h.HandleRankCandidates)
}

// candidatesDescription states the tie rule for inline candidates. Ids are
// ranked in sorted order and a tie keeps the earlier id.
const candidatesDescription = "Inline candidates as an object mapping id to file content. Takes precedence over path. " +
	"Ids are ranked in lexical order, so equal scores go to the lexically first id"

// candidateOptions are the inputs shared by both tools
func candidateOptions(extra ...mcp.ToolOption) []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithString("snippet",
			mcp.Required(),
			mcp.Description("The code snippet to attribute")),
		mcp.WithString("path",
			mcp.Description("File or directory holding the candidate files")),
		mcp.WithObject("candidates",
			mcp.Description(candidatesDescription)),
		mcp.WithArray("include_patterns",
			mcp.WithStringItems(),
			mcp.Description("Glob patterns selecting candidate files under path (default: all text files)")),
	}
	return append(opts, extra...)
}
