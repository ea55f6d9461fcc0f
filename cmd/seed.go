package cmd

import (
	"context"
	"strings"
	"time"

	"example.com/packpal/config"
	"example.com/packpal/internal/database"
	"example.com/packpal/internal/models"
	"example.com/packpal/internal/repository"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	seedName     string
	seedEmail    string
	seedPassword string
	seedRole     string
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create or promote a privileged account",
	Long: `Creates an account with the given role, or promotes an existing
account registered under the same email. Registration through the API
always produces Member accounts, so the first Admin or Owner has to be
seeded from the command line.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedName, "name", "Packpal Admin", "account display name")
	seedCmd.Flags().StringVar(&seedEmail, "email", "", "account email (required)")
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "account password (required for new accounts)")
	seedCmd.Flags().StringVar(&seedRole, "role", string(models.RoleAdmin), "role to assign (Owner, Admin, Member, Viewer)")
	seedCmd.MarkFlagRequired("email")
}

func runSeed(cmd *cobra.Command, args []string) error {
	role := models.Role(seedRole)
	if !models.ValidRole(role) {
		return errors.Errorf("unknown role %q", seedRole)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}
	defer db.Close()

	users := repository.NewUserRepository(db)
	ctx := context.Background()
	email := strings.ToLower(strings.TrimSpace(seedEmail))

	existing, err := users.FindUserByEmail(ctx, email)
	if err == nil {
		// Promote the existing account
		existing.Role = role
		if err := users.UpdateUser(ctx, existing); err != nil {
			return err
		}
		log.WithField("email", email).Infof("Existing account promoted to %s", role)
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if seedPassword == "" {
		return errors.New("--password is required when the account does not exist")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		Name:             seedName,
		Email:            email,
		PasswordHash:     string(hash),
		Role:             role,
		Username:         strings.ReplaceAll(strings.ToLower(seedName), " ", ""),
		RegistrationDate: time.Now(),
	}

	if err := users.CreateUser(ctx, user); err != nil {
		return err
	}

	log.WithField("email", email).Infof("Account created with role %s", role)
	return nil
}
