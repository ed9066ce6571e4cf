package main

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jointwt/sonet"
	"github.com/jointwt/sonet/client"
	"github.com/jointwt/sonet/types"
)

// friendsCmd represents the friends command
var friendsCmd = &cobra.Command{
	Use:     "friends [command]",
	Aliases: []string{"friend"},
	Short:   "List and manage your friends",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		defer app.Close()

		requireAuth(app)
		listFriends(app, (*client.Client).Friends, "friends")
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List friend requests waiting for your answer",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		defer app.Close()

		requireAuth(app)
		listFriends(app, (*client.Client).PendingRequests, "pending requests")
	},
}

type friendAction struct {
	use   string
	short string
	done  string
	do    func(*client.Client, context.Context, int64) error
}

var friendActions = []friendAction{
	{"request", "Send a friend request", "friend request sent to", (*client.Client).SendRequest},
	{"accept", "Accept a friend request", "accepted friend request from", (*client.Client).AcceptRequest},
	{"decline", "Decline a friend request", "declined friend request from", (*client.Client).DeclineRequest},
	{"cancel", "Withdraw a friend request you sent", "cancelled friend request to", (*client.Client).CancelRequest},
	{"unfriend", "Remove a friend", "unfriended", (*client.Client).Unfriend},
	{"block", "Block a user", "blocked", (*client.Client).Block},
	{"unblock", "Unblock a user", "unblocked", (*client.Client).Unblock},
}

func init() {
	friendsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your friends",
		Args:  cobra.NoArgs,
		Run:   friendsCmd.Run,
	})
	friendsCmd.AddCommand(pendingCmd)

	for _, action := range friendActions {
		action := action
		friendsCmd.AddCommand(&cobra.Command{
			Use:   action.use + " <id>",
			Short: action.short,
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				userID := parseID(args[0])

				app := newApp()
				defer app.Close()

				requireAuth(app)
				friend(app, action, userID)
			},
		})
	}

	RootCmd.AddCommand(friendsCmd)
}

func listFriends(app *sonet.App, list func(*client.Client, context.Context) ([]types.UserProfile, error), what string) {
	ctx, cancel := commandContext()
	defer cancel()

	users, err := list(app.Client, ctx)
	if err != nil {
		log.WithError(err).Errorf("error retrieving %s", what)
		exit(app)
	}

	if len(users) == 0 {
		log.Infof("no %s", what)
		return
	}

	for _, u := range users {
		PrintUserRaw(u)
	}
}

func friend(app *sonet.App, action friendAction, userID int64) {
	ctx, cancel := commandContext()
	defer cancel()

	if err := action.do(app.Client, ctx, userID); err != nil {
		log.WithError(err).Errorf("error: %s #%d failed", action.use, userID)
		exit(app)
	}

	// the cached profile no longer reflects the relationship
	app.Profile.Forget(userID)

	log.Infof("%s #%d", action.done, userID)
}
