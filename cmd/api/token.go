package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/makeup-studio/internal/auth"
	"github.com/BruksfildServices01/makeup-studio/internal/validators"
)

var (
	tokenEmail string
	tokenRoles []string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed access token",
	Long: `Issue an HS256 access token signed with JWT_SECRET.

Examples:
  # Admin token valid for the configured JWT_TTL_MINUTES
  makeup-studio token --email admin@makeupstudio.com --role Admin

  # Client token valid for two hours
  makeup-studio token --email ana@example.com --ttl 2h
`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email of the token subject")
	tokenCmd.Flags().StringSliceVar(&tokenRoles, "role", []string{auth.RoleClient}, "Role to grant (repeatable)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to JWT_TTL_MINUTES)")
	_ = tokenCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	if !validators.IsEmail(tokenEmail) {
		return errors.New("--email must be a valid email address")
	}

	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.JWTTTL
	}

	tok, err := auth.Issue([]byte(cfg.JWTSecret), tokenEmail, tokenRoles, ttl)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	fmt.Println(tok)
	return nil
}
