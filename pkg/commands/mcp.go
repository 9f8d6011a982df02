package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	mo := &options.MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve tasks to agents over the Model Context Protocol.",
		Example: `
tick mcp
tick mcp --transport http --http-port 0
`,
		Long: `Launch an MCP server that exposes the active document, its tasks, the
history index and routines, plus tools to edit tasks and close the day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			mode, err := mo.Mode()
			if err != nil {
				return err
			}
			session, _, err := loadSession()
			if err != nil {
				return err
			}
			r := mcp.Runner{
				Session: session,
				Logger:  session.Logger,
				Version: version,
				Out:     cmd.OutOrStdout(),
			}
			if mode == "http" {
				if r.Addr, err = mo.Addr(); err != nil {
					return err
				}
				if r.CertFile, r.KeyFile, err = mo.TLS(); err != nil {
					return err
				}
				r.Transport = mcp.TransportHTTP
				r.Endpoint = mo.Endpoint()
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddMCPArgs(cmd, mo)

	topLevel.AddCommand(cmd)
}
