package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/natserract/idtoken/pkg/identity/tokens"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

func runInfo(ctx context.Context, client tokens.TokensClient, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("info expects exactly one ID token argument")
	}

	body, err := client.GetInfo(ctx, tokens.String(args[0]))
	if err != nil {
		return err
	}
	return printBody(out, body)
}

func runDelegate(ctx context.Context, client tokens.TokensClient, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("delegate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var data tokens.DelegationRequest
	fs.StringVar(&data.IDToken, "id-token", "", "ID token to exchange")
	fs.StringVar(&data.RefreshToken, "refresh-token", "", "refresh token to exchange")
	fs.StringVar(&data.Target, "target", "", "client ID of the target audience")
	fs.StringVar(&data.APIType, "api-type", "", "API type of the delegated token (e.g. app)")
	fs.StringVar(&data.GrantType, "grant-type", "urn:ietf:params:oauth:grant-type:jwt-bearer", "grant type")
	fs.StringVar(&data.Scope, "scope", "", "requested scope")
	fs.StringVar(&data.ClientID, "client-id", "", "client ID, overrides IDP_CLIENT_ID")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("delegate: %w", err)
	}

	body, err := client.GetDelegationToken(ctx, &data)
	if err != nil {
		return err
	}
	return printBody(out, body)
}

func runRevoke(ctx context.Context, client tokens.TokensClient, logger *zap.Logger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("revoke", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	clientID := fs.String("client-id", "", "client ID, overrides IDP_CLIENT_ID")
	clientSecret := fs.String("client-secret", "", "client secret, overrides IDP_CLIENT_SECRET")
	concurrency := fs.Int("concurrency", 4, "maximum number of revocations in flight")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("revoke: %w", err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("revoke expects at least one refresh token argument")
	}
	if *concurrency < 1 {
		*concurrency = 1
	}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(*concurrency).WithErrors()
	for _, refreshToken := range fs.Args() {
		refreshToken := refreshToken
		p.Go(func() error {
			_, err := client.RevokeRefreshToken(ctx, &tokens.RevokeRequest{
				Token:        refreshToken,
				ClientID:     *clientID,
				ClientSecret: *clientSecret,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("Failed to revoke refresh token",
					zap.String("token", redact(refreshToken)),
					zap.Error(err))
				fmt.Fprintf(out, "FAILED  %s: %v\n", redact(refreshToken), err)
				return err
			}
			fmt.Fprintf(out, "REVOKED %s\n", redact(refreshToken))
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return err
	}
	logger.Info("Revoked refresh tokens", zap.Int("count", fs.NArg()))
	return nil
}

func printBody(out io.Writer, body json.RawMessage) error {
	if len(body) == 0 {
		fmt.Fprintln(out, "{}")
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("failed to format response body: %w", err)
	}
	buf.WriteByte('\n')
	_, err := out.Write(buf.Bytes())
	return err
}

// redact keeps only a short prefix of a token for log and console output.
func redact(token string) string {
	const keep = 6
	if len(token) <= keep {
		return "***"
	}
	return token[:keep] + "***"
}
