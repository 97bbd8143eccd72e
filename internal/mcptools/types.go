package mcptools

import "github.com/dusk-indust/mergelists/internal/record"

// MergeListsInput is the input for the merge_lists MCP tool.
type MergeListsInput struct {
	Lists [][]map[string]any `json:"lists,omitempty" jsonschema:"inline record lists; each record has num, title and exactly one of created or deleted"`
	Paths []string           `json:"paths,omitempty" jsonschema:"paths of JSON files holding record lists, read before inline lists"`
}

// MergeListsOutput is the result of the merge_lists MCP tool.
type MergeListsOutput struct {
	Records []record.Output `json:"records"`
	Count   int             `json:"count"`
}
