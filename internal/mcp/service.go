package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanonone/lexvek/pkg/core"
)

// Service implements the tool handlers over an immutable model.
type Service struct {
	model *core.Model
}

func NewService(model *core.Model) *Service {
	return &Service{model: model}
}

// --- Tool Handlers ---

func (s *Service) SimilarWords(ctx context.Context, req *mcp.CallToolRequest, args SimilarWordsArgs) (*mcp.CallToolResult, SimilarWordsResult, error) {
	matches, err := s.model.Similar(args.Word, args.Limit)
	if err != nil {
		return nil, SimilarWordsResult{}, err
	}
	return nil, SimilarWordsResult{Matches: matches}, nil
}

func (s *Service) WordVector(ctx context.Context, req *mcp.CallToolRequest, args WordVectorArgs) (*mcp.CallToolResult, WordVectorResult, error) {
	vector, ok := s.model.Vector(args.Word)
	if !ok {
		return nil, WordVectorResult{}, &core.UnknownWordError{Word: args.Word}
	}
	return nil, WordVectorResult{
		Word:       args.Word,
		Vector:     vector,
		Dimensions: s.model.Dim(),
	}, nil
}

func (s *Service) WordAnalogy(ctx context.Context, req *mcp.CallToolRequest, args WordAnalogyArgs) (*mcp.CallToolResult, WordAnalogyResult, error) {
	matches, err := s.model.Analogy(args.A, args.B, args.C, args.Limit)
	if err != nil {
		return nil, WordAnalogyResult{}, err
	}
	return nil, WordAnalogyResult{Matches: matches}, nil
}

func (s *Service) WordSimilarity(ctx context.Context, req *mcp.CallToolRequest, args WordSimilarityArgs) (*mcp.CallToolResult, WordSimilarityResult, error) {
	similarity, err := s.model.Similarity(args.Word1, args.Word2)
	if err != nil {
		return nil, WordSimilarityResult{}, err
	}
	return nil, WordSimilarityResult{Similarity: similarity}, nil
}
