package main

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jointwt/sonet"
	"github.com/jointwt/sonet/client"
	"github.com/jointwt/sonet/router"
	"github.com/jointwt/sonet/types"
)

// meCmd represents the me command
var meCmd = &cobra.Command{
	Use:     "me [flags]",
	Aliases: []string{"profile"},
	Short:   "Show or update your profile",
	Long: `Show your profile. Any of --name, --dob, --occupation or
--address updates those fields; --avatar uploads a new picture.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		defer app.Close()

		requireAuth(app)
		me(app, cmd)
	},
}

var userCmd = &cobra.Command{
	Use:   "user <id>",
	Short: "Show another user's profile and your friendship with them",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID := parseID(args[0])

		app := newApp()
		defer app.Close()

		requireAuth(app)
		user(app, userID)
	},
}

func init() {
	meCmd.Flags().String("avatar", "", "image file to use as avatar")
	meCmd.Flags().String("name", "", "full name")
	meCmd.Flags().String("dob", "", "date of birth (YYYY-MM-DD)")
	meCmd.Flags().String("occupation", "", "occupation")
	meCmd.Flags().String("address", "", "address")

	RootCmd.AddCommand(meCmd)
	RootCmd.AddCommand(userCmd)
}

func me(app *sonet.App, cmd *cobra.Command) {
	ctx, cancel := commandContext()
	defer cancel()

	if err := app.Profile.FetchCurrentUser(ctx); err != nil {
		log.WithError(err).Error("error fetching current user")
		exit(app)
	}
	current := app.Profile.CurrentUser()
	if current == nil {
		log.Error("no current user")
		exit(app)
	}

	req := types.NewUpdateProfileRequest(*current)
	fields := map[string]*string{
		"name":       &req.FullName,
		"dob":        &req.DateOfBirth,
		"occupation": &req.Occupation,
		"address":    &req.Address,
	}

	changed := false
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if field, ok := fields[f.Name]; ok {
			*field = f.Value.String()
			changed = true
		}
	})

	if changed {
		if err := app.Profile.UpdateUserProfile(ctx, req); err != nil {
			log.WithError(err).Error("error updating profile")
			exit(app)
		}
		log.Info("profile updated")
	}

	if avatar, _ := cmd.Flags().GetString("avatar"); avatar != "" {
		a, f, err := client.OpenAttachment(avatar)
		if err != nil {
			log.WithError(err).Errorf("error opening avatar %s", avatar)
			exit(app)
		}
		defer f.Close()

		if err := app.Profile.UpdateUserAvatar(ctx, a); err != nil {
			log.WithError(err).Error("error uploading avatar")
			exit(app)
		}
		log.Info("avatar updated")
	}

	if current = app.Profile.CurrentUser(); current != nil {
		PrintUser(*current)
	}
}

func user(app *sonet.App, userID int64) {
	ctx, cancel := commandContext()
	defer cancel()

	if err := app.Router.PushParams(router.Profile, map[string]string{"userId": strconv.FormatInt(userID, 10)}); err != nil {
		log.WithError(err).Errorf("error navigating to profile #%d", userID)
		exit(app)
	}

	profile, err := app.Profile.User(ctx, userID)
	if err != nil {
		log.WithError(err).Errorf("error fetching user #%d", userID)
		exit(app)
	}
	PrintUser(profile)
	fmt.Println(faintStyle.Render(sonet.URLForUser(sonet.SiteURL(app.Config().URI), userID)))

	status, err := app.Profile.FriendshipStatus(ctx, userID)
	if err != nil {
		log.WithError(err).Warn("error fetching friendship status")
		return
	}
	log.Infof("friendship: %s", status.Describe())
}
