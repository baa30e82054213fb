package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/ludo-technologies/srcmatch/domain"
	"github.com/ludo-technologies/srcmatch/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// snippetName labels snippets received over MCP
const snippetName = "<mcp>"

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleFindBestMatch handles the find_best_match tool
func (h *HandlerSet) HandleFindBestMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response, errResult := h.match(ctx, request, h.deps.Config().Match.Top)
	if errResult != nil {
		return errResult, nil
	}

	scores := response.Scores
	if scores == nil {
		scores = []domain.CandidateScore{}
	}

	return jsonResult(map[string]interface{}{
		"best_match":       response.BestMatch,
		"best_score":       response.BestScore,
		"confidence":       service.ConfidenceOf(response.BestScore),
		"total_candidates": response.TotalCandidates,
		"scores":           scores,
		"warnings":         response.Warnings,
	})
}

// HandleRankCandidates handles the rank_candidates tool
func (h *HandlerSet) HandleRankCandidates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response, errResult := h.match(ctx, request, 0)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(response)
}

// match parses the shared tool inputs and runs the use case. A non-nil
// result is the tool error to return.
func (h *HandlerSet) match(ctx context.Context, request mcp.CallToolRequest, defaultTop int) (*domain.MatchResponse, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("invalid arguments format")
	}

	req, err := h.buildRequest(args, defaultTop)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}

	useCase, err := h.deps.BuildMatchUseCase()
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("failed to create matcher: %v", err))
	}

	response, err := useCase.MatchAndReturn(ctx, req)
	if err != nil {
		h.deps.logger.WithError(err).Debug("match failed")
		if domain.ErrorCode(err) == domain.ErrCodeEmptyCandidates {
			return nil, mcp.NewToolResultError("no candidate files to match against")
		}
		return nil, mcp.NewToolResultError(fmt.Sprintf("match failed: %v", err))
	}

	h.deps.logger.WithFields(logrus.Fields{
		"best_match": response.BestMatch,
		"candidates": response.TotalCandidates,
	}).Debug("match finished")

	return response, nil
}

// buildRequest converts tool arguments into a MatchRequest. Arguments the
// caller passed are marked explicit so they win over the config file.
func (h *HandlerSet) buildRequest(args map[string]interface{}, defaultTop int) (domain.MatchRequest, error) {
	snippet, ok := args["snippet"].(string)
	if !ok {
		return domain.MatchRequest{}, fmt.Errorf("snippet parameter is required and must be a string")
	}

	req := domain.MatchRequest{
		Snippet: domain.Snippet{
			Name:    snippetName,
			Source:  domain.SnippetSourceInline,
			Content: snippet,
		},
		Top:           defaultTop,
		ShowScores:    domain.BoolPtr(true),
		ConfigPath:    h.deps.ConfigPath(),
		ExplicitFlags: map[string]bool{service.FlagTop: true, service.FlagNoScores: true},
	}

	if raw, present := args["candidates"]; present {
		candidates, err := parseCandidates(raw)
		if err != nil {
			return domain.MatchRequest{}, err
		}
		if len(candidates) == 0 {
			return domain.MatchRequest{}, fmt.Errorf("no candidate files to match against")
		}
		req.Candidates = candidates
	} else {
		path, ok := args["path"].(string)
		if !ok || path == "" {
			return domain.MatchRequest{}, fmt.Errorf("either path or candidates must be given")
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return domain.MatchRequest{}, fmt.Errorf("path does not exist: %s", path)
		}
		req.Paths = []string{path}
	}

	if top, ok := args["top"].(float64); ok {
		if top < 0 {
			return domain.MatchRequest{}, fmt.Errorf("top must be >= 0")
		}
		req.Top = int(top)
	}

	if rawPatterns, ok := args["include_patterns"].([]interface{}); ok {
		for _, p := range rawPatterns {
			if str, ok := p.(string); ok {
				req.IncludePatterns = append(req.IncludePatterns, str)
			}
		}
		if len(req.IncludePatterns) > 0 {
			req.ExplicitFlags[service.FlagInclude] = true
		}
	}

	return req, nil
}

// parseCandidates turns an id to content object into candidates ordered
// by id, so results do not depend on JSON key order
func parseCandidates(raw interface{}) ([]domain.CandidateDocument, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("candidates must be an object mapping id to content")
	}

	ids := make([]string, 0, len(obj))
	for id := range obj {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	candidates := make([]domain.CandidateDocument, 0, len(ids))
	for _, id := range ids {
		content, ok := obj[id].(string)
		if !ok {
			return nil, fmt.Errorf("content of candidate %q must be a string", id)
		}
		candidates = append(candidates, domain.CandidateDocument{
			ID:      id,
			Content: content,
			Size:    int64(len(content)),
		})
	}
	return candidates, nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
