package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/srcmatch/internal/config"
	"github.com/ludo-technologies/srcmatch/internal/logging"
	"github.com/ludo-technologies/srcmatch/internal/version"
	"github.com/ludo-technologies/srcmatch/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "Configuration file path (default: discover .srcmatch.toml)")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging on stderr")
	pflag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// MCP uses stdout for JSON-RPC, logs go to stderr
	if err := logging.Init(logging.LevelFor(cfg.Logging.Level, *verbose), cfg.Logging.File, true); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
	}
	log := logging.WithComponent("mcp-server")

	server := mcpserver.NewMCPServer(
		version.Name,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(cfg, *configPath)))

	log.WithField("version", version.Short()).Info("starting MCP server")
	log.Infof("registered tools: %s, %s", mcp.ToolFindBestMatch, mcp.ToolRankCandidates)

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads an explicit config file, or discovers one from the
// working directory
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}
	cfg, _, err := config.NewTomlConfigLoader().LoadConfig(".")
	return cfg, err
}
