package commands

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport string
		addr      string
		path      string
		tlsCert   string
		tlsKey    string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes boats, schedules, stops and arrivals to
assistants through the Model Context Protocol. Deleting is not offered.`,
		Example: `
riverline mcp --transport stdio
riverline mcp --addr 0.0.0.0:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return handle(cmd, err)
			}
			defer func() { _ = e.Close() }()
			e.app.Confirm = app.NeverConfirm

			if addr == "" {
				addr = viper.GetString("mcp.addr")
			}

			runner := mcp.Runner{
				App:              e.app,
				Logger:           e.logger,
				Name:             "riverline",
				Version:          version,
				Transport:        mcp.Transport(strings.ToLower(strings.TrimSpace(transport))),
				HTTPListenAddr:   addr,
				HTTPEndpointPath: path,
				HTTPServerCert:   strings.TrimSpace(tlsCert),
				HTTPServerKey:    strings.TrimSpace(tlsKey),
			}
			runner.OnHTTPListening = func(a net.Addr) {
				scheme := "http"
				if runner.HTTPServerCert != "" {
					scheme = "https"
				}
				done(cmd, "MCP em %s://%s%s", scheme, displayAddr(a), runner.Endpoint())
			}
			return handle(cmd, runner.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&addr, "addr", "", fmt.Sprintf("listen address for http (default mcp.addr or %s)", mcp.DefaultAddr))
	cmd.Flags().StringVar(&path, "path", mcp.DefaultPath, "HTTP endpoint path")
	cmd.Flags().StringVar(&tlsCert, "tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&tlsKey, "tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

// displayAddr turns a wildcard listener into something a browser can open.
func displayAddr(a net.Addr) string {
	tcp, ok := a.(*net.TCPAddr)
	if !ok {
		return a.String()
	}
	host := "127.0.0.1"
	if tcp.IP != nil && !tcp.IP.IsUnspecified() {
		host = tcp.IP.String()
	}
	return net.JoinHostPort(host, fmt.Sprint(tcp.Port))
}
