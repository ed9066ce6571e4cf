package main

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jointwt/sonet"
	"github.com/jointwt/sonet/client"
)

// postCmd represents the post command
var postCmd = &cobra.Command{
	Use:     "post [flags] [text]",
	Aliases: []string{"new"},
	Short:   "Publish a new post",
	Long: `Publish a new post. The text is taken from the arguments or read
from stdin; --image attaches a picture.`,
	Run: func(cmd *cobra.Command, args []string) {
		image, err := cmd.Flags().GetString("image")
		if err != nil {
			log.WithError(err).Error("error getting image flag")
			os.Exit(1)
		}

		text := readText(args)

		app := newApp()
		defer app.Close()

		requireAuth(app)
		post(app, text, image)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id> <text>",
	Short: "Change the content of one of your posts",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		postID, text := parseID(args[0]), readText(args[1:])

		app := newApp()
		defer app.Close()

		requireAuth(app)
		edit(app, postID, text)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete one of your posts",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		postID := parseID(args[0])

		app := newApp()
		defer app.Close()

		requireAuth(app)
		remove(app, postID)
	},
}

var likeCmd = &cobra.Command{
	Use:     "like <id>",
	Aliases: []string{"unlike"},
	Short:   "Toggle your like on a post",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		postID := parseID(args[0])

		app := newApp()
		defer app.Close()

		requireAuth(app)
		like(app, postID)
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment <id> [text]",
	Short: "Comment on a post",
	Long: `Comment on a post. With --edit the text replaces an existing
comment instead; --delete removes a comment from the post.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		edit, err := cmd.Flags().GetInt64("edit")
		if err != nil {
			log.WithError(err).Error("error getting edit flag")
			os.Exit(1)
		}
		del, err := cmd.Flags().GetInt64("delete")
		if err != nil {
			log.WithError(err).Error("error getting delete flag")
			os.Exit(1)
		}

		postID := parseID(args[0])

		var text string
		if del == 0 {
			text = readText(args[1:])
		}

		app := newApp()
		defer app.Close()

		requireAuth(app)

		switch {
		case del > 0:
			deleteComment(app, postID, del)
		case edit > 0:
			editComment(app, edit, text)
		default:
			comment(app, postID, text)
		}
	},
}

var commentsCmd = &cobra.Command{
	Use:   "comments <id>",
	Short: "List the comments on a post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		page, err := cmd.Flags().GetInt("page")
		if err != nil {
			log.WithError(err).Error("error getting page flag")
			os.Exit(1)
		}

		postID := parseID(args[0])

		app := newApp()
		defer app.Close()

		requireAuth(app)
		comments(app, postID, page)
	},
}

func init() {
	postCmd.Flags().StringP("image", "i", "", "image file to attach")
	commentCmd.Flags().Int64("edit", 0, "id of your comment to replace")
	commentCmd.Flags().Int64("delete", 0, "id of your comment to delete")
	commentsCmd.Flags().Int("page", 0, "page of comments to show (0-based)")

	RootCmd.AddCommand(postCmd)
	RootCmd.AddCommand(editCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(likeCmd)
	RootCmd.AddCommand(commentCmd)
	RootCmd.AddCommand(commentsCmd)
}

func post(app *sonet.App, text, image string) {
	ctx, cancel := commandContext()
	defer cancel()

	if text == "" && image == "" {
		log.Error("no text provided")
		exit(app)
	}

	var attachment *client.Attachment
	if image != "" {
		a, f, err := client.OpenAttachment(image)
		if err != nil {
			log.WithError(err).Errorf("error opening image %s", image)
			exit(app)
		}
		defer f.Close()
		attachment = a
	}

	log.Info("posting...")

	created, err := app.Timeline.CreatePost(ctx, text, attachment)
	if err != nil {
		log.WithError(err).Error("error making post")
		exit(app)
	}

	log.Infof("post #%d successful", created.ID)
}

func edit(app *sonet.App, postID int64, text string) {
	ctx, cancel := commandContext()
	defer cancel()

	if text == "" {
		log.Error("no text provided")
		exit(app)
	}

	if err := app.Timeline.UpdatePost(ctx, postID, text); err != nil {
		log.WithError(err).Errorf("error updating post #%d", postID)
		exit(app)
	}

	log.Infof("post #%d updated", postID)
}

func remove(app *sonet.App, postID int64) {
	ctx, cancel := commandContext()
	defer cancel()

	if err := app.Timeline.DeletePost(ctx, postID); err != nil {
		log.WithError(err).Errorf("error deleting post #%d", postID)
		exit(app)
	}

	log.Infof("post #%d deleted", postID)
}

func like(app *sonet.App, postID int64) {
	ctx, cancel := commandContext()
	defer cancel()

	// the toggle works on loaded posts only
	post, err := app.Client.GetPost(ctx, postID)
	if err != nil {
		log.WithError(err).Errorf("error fetching post #%d", postID)
		exit(app)
	}
	app.Timeline.Load(post)

	if err := app.Timeline.ToggleLike(ctx, postID); err != nil {
		exit(app)
	}

	if updated, ok := app.Timeline.Post(postID); ok {
		PrintPost(updated, time.Now())
	}
}

func comment(app *sonet.App, postID int64, text string) {
	ctx, cancel := commandContext()
	defer cancel()

	if text == "" {
		log.Error("no text provided")
		exit(app)
	}

	created, err := app.Timeline.CreateComment(ctx, postID, text)
	if err != nil {
		log.WithError(err).Errorf("error commenting on post #%d", postID)
		exit(app)
	}

	log.Infof("comment #%d added", created.ID)
}

func editComment(app *sonet.App, commentID int64, text string) {
	ctx, cancel := commandContext()
	defer cancel()

	if text == "" {
		fatal(app, "no text provided")
	}

	if _, err := app.Client.UpdateComment(ctx, commentID, text); err != nil {
		log.WithError(err).Errorf("error updating comment #%d", commentID)
		exit(app)
	}

	log.Infof("comment #%d updated", commentID)
}

func deleteComment(app *sonet.App, postID, commentID int64) {
	ctx, cancel := commandContext()
	defer cancel()

	if err := app.Timeline.DeleteComment(ctx, postID, commentID); err != nil {
		log.WithError(err).Errorf("error deleting comment #%d", commentID)
		exit(app)
	}

	log.Infof("comment #%d deleted", commentID)
}

func comments(app *sonet.App, postID int64, page int) {
	ctx, cancel := commandContext()
	defer cancel()

	res, err := app.Timeline.Comments(ctx, postID, page)
	if err != nil {
		log.WithError(err).Errorf("error retrieving comments on post #%d", postID)
		exit(app)
	}

	now := time.Now()
	for _, c := range res.Content {
		PrintComment(c, now)
	}

	if !res.Last {
		log.Infof("page %d of %d, use --page %d for more", res.Number+1, res.TotalPages, res.Number+1)
	}
}
