// AngelaMos | 2026
// admin.go

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/campaign-studio/internal/auth"
	"github.com/carterperez-dev/campaign-studio/internal/authz"
	"github.com/carterperez-dev/campaign-studio/internal/core"
	"github.com/carterperez-dev/campaign-studio/internal/role"
	"github.com/carterperez-dev/campaign-studio/internal/user"
)

const (
	usernameFlag  = "username"
	emailFlag     = "email"
	firstNameFlag = "first-name"
	lastNameFlag  = "last-name"

	passwordEnv = "STUDIOCTL_ADMIN_PASSWORD"
)

var adminFlags = map[string]cobraflags.Flag{
	configFlag: newConfigFlag(),
	usernameFlag: &cobraflags.StringFlag{
		Name:  usernameFlag,
		Value: "",
		Usage: "Login name for the administrator (required)",
	},
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email address for the administrator (required)",
	},
	firstNameFlag: &cobraflags.StringFlag{
		Name:  firstNameFlag,
		Value: "",
		Usage: "Optional first name",
	},
	lastNameFlag: &cobraflags.StringFlag{
		Name:  lastNameFlag,
		Value: "",
		Usage: "Optional last name",
	},
}

func newCreateAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a user holding the system_admin role",
		Long: `Create the first administrator. Self-registration never grants a role,
so this is how a fresh deployment gets an account that can manage others.

The password is read from ` + passwordEnv + `.`,
		Args: cobra.NoArgs,
		RunE: createAdminCommand,
	}

	cobraflags.RegisterMap(cmd, adminFlags)
	return cmd
}

// adminAccount reuses the registration rules so an administrator is held
// to the same username, email and password constraints as everyone else.
func adminAccount() (auth.RegisterRequest, error) {
	req := auth.RegisterRequest{
		Username:  strings.TrimSpace(adminFlags[usernameFlag].GetString()),
		Email:     strings.TrimSpace(adminFlags[emailFlag].GetString()),
		Password:  os.Getenv(passwordEnv),
		FirstName: optional(adminFlags[firstNameFlag].GetString()),
		LastName:  optional(adminFlags[lastNameFlag].GetString()),
	}

	if req.Password == "" {
		return req, fmt.Errorf("%s must be set", passwordEnv)
	}

	if err := core.ValidateStruct(core.NewValidator(), req); err != nil {
		return req, err
	}
	return req, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func createAdminCommand(cmd *cobra.Command, _ []string) error {
	req, err := adminAccount()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(adminFlags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process is exiting

	adminRole, err := role.NewRepository(db.DB).GetByName(ctx, authz.RoleSystemAdmin)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("role %s is missing; run studioctl migrate up first", authz.RoleSystemAdmin)
		}
		return err
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return err
	}

	users := user.NewService(user.NewRepository(db.DB), authz.DefaultPolicy)
	created, err := users.CreateWithRole(ctx, auth.NewAccount{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}, adminRole.ID)
	if err != nil {
		if appErr, ok := core.AsAppError(err); ok && errors.Is(err, core.ErrDuplicateKey) {
			return errors.New(appErr.Message)
		}
		return err
	}

	cmd.Printf("created %s (%s) with role %s\n", created.Username, created.ID, adminRole.Name)
	return nil
}
