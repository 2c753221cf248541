// AngelaMos | 2026
// secret.go

package main

import (
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

const bytesFlag = "bytes"

var secretFlags = map[string]cobraflags.Flag{
	bytesFlag: &cobraflags.StringFlag{
		Name:  bytesFlag,
		Value: "48",
		Usage: "Number of random bytes before encoding",
	},
}

func newGenSecretCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-secret",
		Short: "Print a random value for JWT_SECRET_KEY or ENCRYPTION_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := strconv.Atoi(secretFlags[bytesFlag].GetString())
			if err != nil || n < 32 {
				return fmt.Errorf("--%s must be an integer of at least 32", bytesFlag)
			}

			secret, err := core.GenerateSecureToken(n)
			if err != nil {
				return err
			}
			cmd.Println(secret)
			return nil
		},
	}

	cobraflags.RegisterMap(cmd, secretFlags)
	return cmd
}
