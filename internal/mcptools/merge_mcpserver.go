package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMergeMCPServer creates an MCP server with the merge_lists tool
// registered, reporting version as its implementation version.
func NewMergeMCPServer(svc *MergeService, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mergelists",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_lists",
		Description: "Merge two or more record lists keyed by num. For each num the record with the latest created/deleted timestamp wins; ties keep the record seen first. Returns the survivors sorted by timestamp.",
	}, svc.MergeLists)

	return server
}

// RunMergeMCPServerStdio runs the MCP server on stdio transport, blocking
// until stdin is closed or the context is cancelled.
func RunMergeMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
