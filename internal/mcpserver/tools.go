package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchRecipesInput is the input schema for the search_recipes tool.
type SearchRecipesInput struct {
	Query string `json:"query" jsonschema:"search terms to find recipes in the indexed cookbooks"`
}

// SearchRecipesOutput is the output schema for the search_recipes tool.
type SearchRecipesOutput struct {
	Results []RecipePassage `json:"results"`
	Count   int             `json:"count"`
}

// RecipePassage is one retrieved cookbook passage.
type RecipePassage struct {
	DocName string  `json:"doc_name"`
	Page    int     `json:"page"`
	Score   float32 `json:"score"`
	Content string  `json:"content"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_recipes",
		Description: "Search the indexed cookbooks for recipe passages",
	}, s.handleSearchRecipes)
}

func (s *Server) handleSearchRecipes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchRecipesInput,
) (*mcp.CallToolResult, SearchRecipesOutput, error) {
	passages, err := s.ragService.Retrieve(ctx, input.Query)
	if err != nil {
		return nil, SearchRecipesOutput{}, err
	}

	output := SearchRecipesOutput{
		Results: make([]RecipePassage, len(passages)),
		Count:   len(passages),
	}
	for i, p := range passages {
		output.Results[i] = RecipePassage{
			DocName: p.DocName,
			Page:    p.PageNum,
			Score:   p.Score,
			Content: p.Content,
		}
	}
	return nil, output, nil
}
