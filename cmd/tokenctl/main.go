package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/natserract/idtoken/pkg/config"
	httpclient "github.com/natserract/idtoken/pkg/http"
	"github.com/natserract/idtoken/pkg/identity/tokens"
	"go.uber.org/zap"
)

const usage = `Usage: tokenctl <command> [flags] [args]

Commands:
  info <id_token>                       resolve an ID token to its user profile
  delegate [flags]                      exchange an ID or refresh token for a delegation token
  revoke [flags] <refresh_token>...     revoke one or more refresh tokens

Configuration is read from the environment (or .env):
  IDP_BASE_URL, IDP_CLIENT_ID, IDP_CLIENT_SECRET, IDP_HEADERS, IDP_TIMEOUT
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if isHelp(os.Args[1]) {
		fmt.Fprint(os.Stdout, usage)
		return
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	client, err := newTokensClient(cfg, logger)
	if err != nil {
		logger.Error("Failed to create tokens client", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to create tokens client: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := run(ctx, client, logger, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if tokens.IsArgumentError(err) {
			fmt.Fprintf(os.Stderr, "Invalid arguments: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newTokensClient(cfg *config.Config, logger *zap.Logger) (*tokens.Client, error) {
	return tokens.New(&tokens.Config{
		BaseURL:      cfg.BaseURL,
		Headers:      cfg.Headers,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	},
		tokens.WithLogger(logger),
		tokens.WithHTTPClient(httpclient.NewClientWithTimeout(logger, cfg.Timeout)),
	)
}

func isHelp(command string) bool {
	switch command {
	case "help", "-h", "--help":
		return true
	}
	return false
}

func run(ctx context.Context, client tokens.TokensClient, logger *zap.Logger, command string, args []string, out io.Writer) error {
	switch command {
	case "info":
		return runInfo(ctx, client, args, out)
	case "delegate":
		return runDelegate(ctx, client, args, out)
	case "revoke":
		return runRevoke(ctx, client, logger, args, out)
	default:
		if isHelp(command) {
			fmt.Fprint(out, usage)
			return nil
		}
		return fmt.Errorf("unknown command %q", command)
	}
}
