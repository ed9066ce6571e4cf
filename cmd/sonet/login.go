package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jointwt/sonet"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:     "login [flags]",
	Aliases: []string{"auth"},
	Short:   "Login and authenticate to the API",
	Long: `Login asks for your email and password, then for the one-time
passcode the backend issues, and stores the resulting access token.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		defer app.Close()

		login(app)
	},
}

var registerCmd = &cobra.Command{
	Use:     "register [flags]",
	Aliases: []string{"signup"},
	Short:   "Create a new account",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		defer app.Close()

		register(app)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		defer app.Close()

		app.Session.Logout()
		log.Info("logged out")
	},
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"whoami"},
	Short:   "Show the current session",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		defer app.Close()

		status(app)
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		defer app.Close()

		forgotPassword(app)
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <token>",
	Short: "Set a new password using a reset token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		defer app.Close()

		resetPassword(app, args[0])
	},
}

func init() {
	RootCmd.AddCommand(loginCmd)
	RootCmd.AddCommand(registerCmd)
	RootCmd.AddCommand(logoutCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(forgotPasswordCmd)
	RootCmd.AddCommand(resetPasswordCmd)
}

// sessionError exits when the last session operation recorded an error
func sessionError(app *sonet.App) {
	if msg := app.Session.Error(); msg != "" {
		fatal(app, msg)
	}
}

func login(app *sonet.App) {
	ctx, cancel := commandContext()
	defer cancel()

	email, password, err := readCredentials()
	if err != nil {
		log.WithError(err).Error("error reading credentials")
		exit(app)
	}

	issued := app.Session.Login(ctx, email, password)
	sessionError(app)

	otp, err := prompt("One-time passcode", issued)
	if err != nil {
		log.WithError(err).Error("error reading passcode")
		exit(app)
	}

	app.Session.VerifyOTP(ctx, email, otp)
	sessionError(app)

	if me := app.Profile.CurrentUser(); me != nil {
		log.Infof("logged in as %s", me.DisplayName())
	} else {
		log.Info("login successful")
	}
}

func register(app *sonet.App) {
	ctx, cancel := commandContext()
	defer cancel()

	email, password, err := readCredentials()
	if err != nil {
		log.WithError(err).Error("error reading credentials")
		exit(app)
	}

	confirm, err := promptPassword("Confirm password")
	if err != nil {
		log.WithError(err).Error("error reading password")
		exit(app)
	}
	if confirm != password {
		log.Error("passwords do not match")
		exit(app)
	}

	app.Session.Register(ctx, email, password)
	sessionError(app)

	log.Info("registration successful, run `sonet login` to sign in")
}

func status(app *sonet.App) {
	ctx, cancel := commandContext()
	defer cancel()

	if !app.Session.IsAuthenticated() {
		fmt.Println("not logged in")
		return
	}

	if claims, ok := app.Session.Claims(); ok {
		fmt.Printf("subject: %s\n", claims.Subject)
		if !claims.ExpiresAt.IsZero() {
			fmt.Printf("expires: %s\n", humanize.Time(claims.ExpiresAt))
			if claims.Expired(time.Now()) {
				PrintNotice("access token has expired")
			}
		}
	}

	if err := app.Profile.FetchCurrentUser(ctx); err != nil {
		log.WithError(err).Error("error fetching current user")
		return
	}
	if me := app.Profile.CurrentUser(); me != nil {
		PrintUser(*me)
	}
}

func forgotPassword(app *sonet.App) {
	ctx, cancel := commandContext()
	defer cancel()

	email, err := prompt("Email", "")
	if err != nil {
		log.WithError(err).Error("error reading email")
		exit(app)
	}

	token := app.Session.ForgotPassword(ctx, email)
	sessionError(app)

	if token != "" {
		fmt.Printf("reset token: %s\n", token)
	}
	log.Info("password reset requested, run `sonet reset-password <token>` to continue")
}

func resetPassword(app *sonet.App, token string) {
	ctx, cancel := commandContext()
	defer cancel()

	password, err := promptPassword("New password")
	if err != nil {
		log.WithError(err).Error("error reading password")
		exit(app)
	}

	app.Session.ResetPassword(ctx, token, password)
	sessionError(app)

	log.Info("password changed, run `sonet login` to sign in")
}
