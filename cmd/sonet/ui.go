package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jointwt/sonet"
	"github.com/jointwt/sonet/types"
)

var (
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	likedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// PrintNotice shows a transient failure notice on stderr
func PrintNotice(msg string) {
	fmt.Fprintln(os.Stderr, noticeStyle.Render("! "+msg))
}

func PrintPost(post types.Post, now time.Time) {
	likes := fmt.Sprintf("%s likes", humanize.Comma(post.LikeCount))
	if post.Liked() {
		likes = likedStyle.Render(likes)
	}

	fmt.Printf("> %s %s (%s)\n%s\n",
		nameStyle.Render(post.Author.DisplayName()),
		idStyle.Render(fmt.Sprintf("#%d", post.ID)),
		humanize.RelTime(post.CreatedAt.Time, now, "ago", "from now"),
		sonet.PlainText(post.Content),
	)
	if post.ImageURL != "" {
		fmt.Println(faintStyle.Render(post.ImageURL))
	}
	fmt.Printf("%s · %s comments\n",
		likes,
		humanize.Comma(post.CommentCount),
	)
}

func PrintComment(comment types.Comment, now time.Time) {
	fmt.Printf("  > %s %s (%s)\n  %s\n",
		nameStyle.Render(comment.Author.DisplayName()),
		idStyle.Render(fmt.Sprintf("#%d", comment.ID)),
		humanize.RelTime(comment.CreatedAt.Time, now, "ago", "from now"),
		sonet.PlainText(comment.Content),
	)
}

func PrintUser(user types.UserProfile) {
	fmt.Printf("%s %s <%s>\n",
		idStyle.Render(fmt.Sprintf("#%d", user.ID)),
		nameStyle.Render(user.DisplayName()),
		user.Email,
	)
	for _, field := range []struct{ label, value string }{
		{"Born", user.DateOfBirth},
		{"Occupation", user.Occupation},
		{"Address", user.Address},
		{"Avatar", user.AvatarURL},
	} {
		if field.value != "" {
			fmt.Printf("  %s %s\n", faintStyle.Render(field.label+":"), field.value)
		}
	}
}

func PrintUserRaw(user types.UserProfile) {
	fmt.Printf("%d\t%s\t%s\n", user.ID, user.Email, user.FullName)
}
