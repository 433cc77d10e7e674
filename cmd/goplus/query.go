package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/layer-3/goplus"
	"github.com/spf13/cobra"
)

var (
	queryChain   string
	queryTimeout time.Duration

	approvalKind string
	nftTokenID   string

	abiContract string
	abiSigner   string
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List the chains the remote supports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		env, err := newSession().SupportedChains(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), env)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <address>...",
	Short: "Token security report for one or more contracts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryChain == "" {
			return fmt.Errorf("--chain is required")
		}
		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		env, err := newSession().TokenRisk(ctx, queryChain, goplus.JoinAddresses(args...))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), env)
	},
}

var addressCmd = &cobra.Command{
	Use:   "address <address>",
	Short: "Malicious address report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		env, err := newSession().AddressRisk(ctx, args[0], queryChain)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), env)
	},
}

var approvalCmd = &cobra.Command{
	Use:   "approval <address>",
	Short: "Approval security report; --kind selects the v2 erc20/erc721/erc1155 endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryChain == "" {
			return fmt.Errorf("--chain is required")
		}
		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		session := newSession()
		if approvalKind == "" {
			env, err := session.ApprovalSecurityV1(ctx, queryChain, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), env)
		}

		kind, err := goplus.ParseApprovalKind(approvalKind)
		if err != nil {
			return err
		}
		env, err := session.ApprovalSecurityV2(ctx, kind, queryChain, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), env)
	},
}

var abiCmd = &cobra.Command{
	Use:   "abi <calldata>",
	Short: "Decode transaction input data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryChain == "" {
			return fmt.Errorf("--chain is required")
		}
		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		req := goplus.AbiDecodeRequest{ChainID: queryChain, Data: args[0]}
		if abiContract != "" {
			req.ContractAddress = &abiContract
		}
		if abiSigner != "" {
			req.Signer = &abiSigner
		}
		env, err := newSession().AbiDecode(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), env)
	},
}

var nftCmd = &cobra.Command{
	Use:   "nft <contract>",
	Short: "NFT collection security report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryChain == "" {
			return fmt.Errorf("--chain is required")
		}
		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		env, err := newSession().NftRisk(ctx, queryChain, args[0], nftTokenID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), env)
	},
}

var phishingCmd = &cobra.Command{
	Use:   "phishing <url>",
	Short: "Phishing site report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		env, err := newSession().PhishingSiteRisk(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), env)
	},
}

var rugpullCmd = &cobra.Command{
	Use:   "rugpull <contract>",
	Short: "Rug-pull risk report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryChain == "" {
			return fmt.Errorf("--chain is required")
		}
		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		env, err := newSession().RugPullRisk(ctx, queryChain, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), env)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <code>",
	Short: "Explain a remote status code",
	Args:  cobra.ExactArgs(1),
	// offline; needs no configuration
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid code %q: %w", args[0], err)
		}
		st := goplus.Interpret(uint32(code))
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"code":        st.Code,
			"category":    st.Category.String(),
			"description": st.Description,
			"retryable":   st.Category.Retryable(),
		})
	},
}

func contextWithTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), queryTimeout)
}

func init() {
	for _, c := range []*cobra.Command{tokenCmd, approvalCmd, abiCmd, nftCmd, rugpullCmd} {
		c.Flags().StringVar(&queryChain, "chain", "", "chain ID, e.g. 1 or 56")
	}
	addressCmd.Flags().StringVar(&queryChain, "chain", "", "chain ID (optional)")
	approvalCmd.Flags().StringVar(&approvalKind, "kind", "", "erc20, erc721 or erc1155 (default: v1 contract approvals)")
	nftCmd.Flags().StringVar(&nftTokenID, "token-id", "", "token ID (optional)")
	abiCmd.Flags().StringVar(&abiContract, "contract", "", "contract address (optional)")
	abiCmd.Flags().StringVar(&abiSigner, "signer", "", "signer address (optional)")

	for _, c := range []*cobra.Command{chainsCmd, tokenCmd, addressCmd, approvalCmd, abiCmd, nftCmd, phishingCmd, rugpullCmd} {
		c.Flags().DurationVar(&queryTimeout, "timeout", 30*time.Second, "request timeout")
	}

	rootCmd.AddCommand(chainsCmd, tokenCmd, addressCmd, approvalCmd, abiCmd, nftCmd, phishingCmd, rugpullCmd, statusCmd)
}
