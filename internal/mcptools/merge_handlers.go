package mcptools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/dusk-indust/mergelists/internal/loader"
	"github.com/dusk-indust/mergelists/internal/merge"
	"github.com/dusk-indust/mergelists/internal/record"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MergeService handles MCP tool calls for the merge server mode.
type MergeService struct {
	workers int
}

// NewMergeService creates a MergeService reading files with the given
// number of workers.
func NewMergeService(workers int) *MergeService {
	return &MergeService{workers: workers}
}

// MergeLists validates every supplied list and returns the merged records.
// Lists from files are ingested first, in path order, followed by inline lists.
func (s *MergeService) MergeLists(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MergeListsInput,
) (*mcp.CallToolResult, MergeListsOutput, error) {
	if len(input.Lists)+len(input.Paths) < 2 {
		return nil, MergeListsOutput{}, fmt.Errorf("at least two lists are required, got %d", len(input.Lists)+len(input.Paths))
	}

	lists, err := loader.New(s.workers, nil).Load(ctx, input.Paths)
	if err != nil {
		return nil, MergeListsOutput{}, err
	}

	for i, raw := range input.Lists {
		recs, err := decodeInline(raw)
		if err != nil {
			return nil, MergeListsOutput{}, fmt.Errorf("list %d: %w", i, err)
		}
		lists = append(lists, recs)
	}

	merged := merge.Merge(lists...)
	return nil, MergeListsOutput{
		Records: record.ToOutput(merged),
		Count:   len(merged),
	}, nil
}

// maxExactInt is the first integer a float64 can no longer tell apart from
// its neighbour.
const maxExactInt = 1 << 53

// decodeInline runs an inline list through the same decoder used for files
// so both paths share validation. Inline arguments arrive as float64, so
// numbers that float64 cannot hold exactly are refused rather than rounded.
func decodeInline(raw []map[string]any) ([]record.Record, error) {
	if raw == nil {
		raw = []map[string]any{}
	}
	for i, obj := range raw {
		if err := checkExactNumbers(obj); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return record.Decode(bytes.NewReader(data))
}

func checkExactNumbers(obj map[string]any) error {
	for _, field := range []string{"num", "created", "deleted"} {
		f, ok := obj[field].(float64)
		if !ok {
			continue
		}
		if f != math.Trunc(f) {
			return fmt.Errorf("field `%s` is not an integer: %v", field, f)
		}
		if math.Abs(f) >= maxExactInt {
			return fmt.Errorf("field `%s` is too large to pass inline without losing precision; pass the list through paths instead", field)
		}
	}
	return nil
}
