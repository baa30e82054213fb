package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ludo-technologies/srcmatch/domain"
	"github.com/ludo-technologies/srcmatch/internal/analyzer"
	"github.com/ludo-technologies/srcmatch/internal/logging"
	"github.com/ludo-technologies/srcmatch/internal/version"
	"github.com/sirupsen/logrus"
)

// MatchServiceImpl implements the MatchService interface
type MatchServiceImpl struct {
	reader domain.CandidateReader
	logger *logrus.Entry
}

// NewMatchService creates a new match service reading candidates with reader
func NewMatchService(reader domain.CandidateReader) *MatchServiceImpl {
	return &MatchServiceImpl{
		reader: reader,
		logger: logging.WithComponent("match"),
	}
}

// WithLogger replaces the logger
func (s *MatchServiceImpl) WithLogger(logger *logrus.Entry) *MatchServiceImpl {
	s.logger = logger
	return s
}

// Match attributes req.Snippet to the best scoring candidate
func (s *MatchServiceImpl) Match(ctx context.Context, req domain.MatchRequest) (*domain.MatchResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	docs, err := s.candidates(ctx, req, []domain.Snippet{req.Snippet})
	if err != nil {
		return nil, err
	}

	result, err := analyzer.FindBestMatch(req.Snippet.Content, toAnalyzerCandidates(docs))
	if err != nil {
		return nil, s.wrapMatchError(err)
	}

	s.logScores(req.Snippet, result)

	resp := s.buildResponse(req, req.Snippet, result, docs)
	resp.DurationMs = time.Since(start).Milliseconds()
	return resp, nil
}

// MatchBatch attributes every snippet against one candidate set. Candidate
// statistics are computed once through an analyzer.CandidateIndex.
func (s *MatchServiceImpl) MatchBatch(ctx context.Context, req domain.MatchRequest, snippets []domain.Snippet) (*domain.BatchMatchResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(snippets) == 0 {
		return nil, domain.NewValidationError("no snippets given")
	}

	docs, err := s.candidates(ctx, req, snippets)
	if err != nil {
		return nil, err
	}

	index := analyzer.NewCandidateIndex(toAnalyzerCandidates(docs))
	batch := &domain.BatchMatchResponse{
		Results:         make([]domain.MatchResponse, 0, len(snippets)),
		TotalCandidates: index.Len(),
		GeneratedAt:     time.Now().Format(time.RFC3339),
		Version:         version.Version,
	}

	for _, snippet := range snippets {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch match cancelled: %w", err)
		}

		snippetStart := time.Now()
		result, err := index.Match(snippet.Content)
		if err != nil {
			return nil, s.wrapMatchError(err)
		}
		s.logScores(snippet, result)

		resp := s.buildResponse(req, snippet, result, docs)
		resp.DurationMs = time.Since(snippetStart).Milliseconds()
		batch.Results = append(batch.Results, *resp)
	}

	batch.DurationMs = time.Since(start).Milliseconds()
	return batch, nil
}

// candidates returns the inline candidates or reads them from req.Paths.
// Files the snippets were read from are never read as candidates.
func (s *MatchServiceImpl) candidates(ctx context.Context, req domain.MatchRequest, snippets []domain.Snippet) ([]domain.CandidateDocument, error) {
	var docs []domain.CandidateDocument
	if len(req.Candidates) > 0 {
		docs = req.Candidates
	} else {
		if s.reader == nil {
			return nil, domain.NewInvalidInputError("no candidate reader configured for path input", nil)
		}
		opts := req.ReadOptions()
		opts.ExcludeFiles = append(append([]string(nil), opts.ExcludeFiles...), snippetFiles(snippets)...)
		read, err := s.reader.ReadCandidates(ctx, req.Paths, opts)
		if err != nil {
			return nil, err
		}
		docs = read
	}

	if len(docs) == 0 {
		return nil, domain.NewEmptyCandidatesError(analyzer.ErrNoCandidates)
	}

	s.logger.WithField("candidates", len(docs)).Debug("candidates collected")
	return docs, nil
}

func snippetFiles(snippets []domain.Snippet) []string {
	var files []string
	for _, snippet := range snippets {
		if snippet.Source == domain.SnippetSourceFile && snippet.Name != "" {
			files = append(files, snippet.Name)
		}
	}
	return files
}

func (s *MatchServiceImpl) wrapMatchError(err error) error {
	if errors.Is(err, analyzer.ErrNoCandidates) {
		return domain.NewEmptyCandidatesError(err)
	}
	return domain.NewMatchError("failed to rank candidates", err)
}

// logScores emits every candidate score at debug level
func (s *MatchServiceImpl) logScores(snippet domain.Snippet, result *analyzer.MatchResult) {
	if !s.logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	for i, sc := range result.Ranked {
		s.logger.WithFields(logrus.Fields{
			"snippet": snippet.Name,
			"rank":    i + 1,
			"id":      sc.ID,
			"score":   fmt.Sprintf("%.4f", sc.Score),
		}).Debug("candidate score")
	}
}

func (s *MatchServiceImpl) buildResponse(req domain.MatchRequest, snippet domain.Snippet, result *analyzer.MatchResult, docs []domain.CandidateDocument) *domain.MatchResponse {
	snippetTokens := len(analyzer.Tokenize(snippet.Content))

	resp := &domain.MatchResponse{
		Snippet:         snippet,
		SnippetTokens:   snippetTokens,
		BestMatch:       result.Best,
		BestScore:       result.BestScore(),
		TotalCandidates: len(result.Ranked),
		VocabularySize:  result.VocabularySize,
		Warnings:        s.warnings(snippetTokens, result),
		GeneratedAt:     time.Now().Format(time.RFC3339),
		Version:         version.Version,
	}

	if domain.BoolValue(req.ShowScores, true) {
		resp.Scores = s.scoreView(req, result, docs)
	}
	return resp
}

// scoreView applies the min-score and top filters to the ranked list
func (s *MatchServiceImpl) scoreView(req domain.MatchRequest, result *analyzer.MatchResult, docs []domain.CandidateDocument) []domain.CandidateScore {
	view := result.Ranked.AtLeast(req.MinScore).Top(req.Top)

	var tokens map[string]int
	if domain.BoolValue(req.ShowTokens, false) {
		tokens = make(map[string]int, len(docs))
		for _, d := range docs {
			// later duplicates win, as in the analyzer
			tokens[d.ID] = len(analyzer.Tokenize(d.Content))
		}
	}

	scores := make([]domain.CandidateScore, len(view))
	for i, sc := range view {
		scores[i] = domain.CandidateScore{
			Rank:   i + 1,
			ID:     sc.ID,
			Score:  sc.Score,
			Tokens: tokens[sc.ID],
		}
	}
	return scores
}

func (s *MatchServiceImpl) warnings(snippetTokens int, result *analyzer.MatchResult) []string {
	var warnings []string

	switch {
	case snippetTokens == 0:
		warnings = append(warnings, "snippet contains no tokens; every score is 0 and the first candidate was chosen")
	case result.BestScore() == 0:
		warnings = append(warnings, "snippet shares no tokens with any candidate; the first candidate was chosen")
	default:
		ties := 0
		for _, sc := range result.Ranked[1:] {
			if sc.Score != result.Ranked[0].Score {
				break
			}
			ties++
		}
		if ties > 0 {
			warnings = append(warnings, fmt.Sprintf("best match tied with %d other candidate(s); the first in input order was chosen", ties))
		}
	}

	return warnings
}

func toAnalyzerCandidates(docs []domain.CandidateDocument) []analyzer.Candidate {
	candidates := make([]analyzer.Candidate, len(docs))
	for i, d := range docs {
		candidates[i] = analyzer.Candidate{ID: d.ID, Content: d.Content}
	}
	return candidates
}
