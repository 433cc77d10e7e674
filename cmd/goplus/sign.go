package main

import (
	"fmt"
	"time"

	"github.com/layer-3/goplus"
	"github.com/layer-3/goplus/adapters/tokenizer"
	"github.com/layer-3/goplus/service"
	"github.com/spf13/cobra"
)

var (
	signTime     int64
	signExchange bool

	bearerSubject string
	bearerTTL     time.Duration
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign the configured key pair, optionally exchanging it for an access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.HasKeys() {
			return fmt.Errorf("GP_PUBLIC and GP_SECRET are required")
		}

		now := time.Now()
		if signTime > 0 {
			now = time.Unix(signTime, 0)
		}
		sig, unix := goplus.SignNow(cfg.AppKey, cfg.AppSecret, now)

		if !signExchange {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"app_key": cfg.AppKey,
				"time":    unix,
				"sign":    sig,
			})
		}

		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		env, err := newSession().RefreshCredential(ctx, cfg.AppKey, sig, unix)
		if env != nil {
			if perr := printJSON(cmd.OutOrStdout(), env); perr != nil {
				return perr
			}
		}
		return err
	},
}

var bearerCmd = &cobra.Command{
	Use:   "bearer",
	Short: "Issue a gateway bearer token signed with GATEWAY_JWT_SECRET",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.GatewayJWTSecret == "" {
			return fmt.Errorf("GATEWAY_JWT_SECRET is required")
		}

		authService := service.NewAuthService(tokenizer.NewJWTTokenizer([]byte(cfg.GatewayJWTSecret)), nil)
		token, caller, err := authService.IssueToken(bearerSubject, bearerTTL)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"token":      token,
			"token_type": "Bearer",
			"expires_at": caller.ExpiresAt.UTC(),
		})
	},
}

func init() {
	signCmd.Flags().Int64Var(&signTime, "time", 0, "UNIX seconds to sign with (default now)")
	signCmd.Flags().BoolVar(&signExchange, "exchange", false, "exchange the signature for an access token")
	signCmd.Flags().DurationVar(&queryTimeout, "timeout", 30*time.Second, "request timeout")

	bearerCmd.Flags().StringVar(&bearerSubject, "subject", "operator", "subject the token is issued to")
	bearerCmd.Flags().DurationVar(&bearerTTL, "ttl", 24*time.Hour, "token lifetime")

	rootCmd.AddCommand(signCmd, bearerCmd)
}
