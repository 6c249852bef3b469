package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/pastry-blog/internal/config"
	"github.com/spf13/cobra"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print the bcrypt hash to use as ADMIN_PASSWORD_HASH",
	Long:  "Reads the admin password from the first line of stdin and prints its bcrypt hash. BCRYPT_COST and PASSWORD_PEPPER are honoured.",
	Args:  cobra.NoArgs,
	RunE:  runHashPassword,
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(cmd *cobra.Command, _ []string) error {
	cost := config.GetEnvInt("BCRYPT_COST", config.DefaultBcryptCost)
	if cost < config.MinBcryptCost || cost > config.MaxBcryptCost {
		return fmt.Errorf("bcrypt cost out of range: %d (must be %d-%d)", cost, config.MinBcryptCost, config.MaxBcryptCost)
	}
	auth := &config.AuthConfig{
		BcryptCost: cost,
		Pepper:     config.GetEnvString("PASSWORD_PEPPER", ""),
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		return errors.New("password must not be empty")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
