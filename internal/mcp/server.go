// Package mcp exposes a trained model to LLM agents over the Model Context
// Protocol.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanonone/lexvek/pkg/core"
)

// NewMCPServer builds an MCP server whose tools query the given model.
func NewMCPServer(model *core.Model, version string) *mcp.Server {
	service := NewService(model)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "lexvek",
		Version: version,
	}, nil) // Options can be nil for default

	// Register Tools using the generic AddTool which inspects structs.

	mcp.AddTool(s, &mcp.Tool{
		Name:        "similar_words",
		Description: "Find the words closest in meaning to a given word, ranked by cosine similarity.",
	}, service.SimilarWords)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "word_vector",
		Description: "Look up the embedding vector of a word.",
	}, service.WordVector)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "word_analogy",
		Description: "Solve 'a is to b as c is to ?' by vector offset (e.g. king is to queen as man is to woman).",
	}, service.WordAnalogy)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "word_similarity",
		Description: "Compute the cosine similarity between two words, from -1 (opposite) to 1 (same context).",
	}, service.WordSimilarity)

	return s
}
