package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/jointwt/sonet"
)

var stdin = bufio.NewReader(os.Stdin)

// prompt reads one line from stdin, returning def when it is blank
func prompt(label, def string) (string, error) {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}

	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// promptPassword reads a password without echoing it
func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	data, err := terminal.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readCredentials() (string, string, error) {
	email, err := prompt("Email", "")
	if err != nil {
		log.WithError(err).Error("error reading email")
		return "", "", err
	}

	password, err := promptPassword("Password")
	if err != nil {
		log.WithError(err).Error("error reading password")
		return "", "", err
	}

	return email, password, nil
}

// readText joins args or falls back to reading stdin
func readText(args []string) string {
	text := strings.Join(args, " ")

	if text == "" {
		data, err := stdin.ReadString(0)
		if err != nil && data == "" {
			log.WithError(err).Error("error reading text from stdin")
			os.Exit(1)
		}
		text = data
	}

	return strings.TrimSpace(text)
}

// parseID ...
func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		log.Errorf("invalid id %q", s)
		os.Exit(1)
	}
	return id
}

// exit closes the app, syncing the token store, and exits non-zero
func exit(app *sonet.App) {
	if err := app.Close(); err != nil {
		log.WithError(err).Error("error closing app")
	}
	os.Exit(1)
}

// fatal logs msg and exits through exit
func fatal(app *sonet.App, msg string) {
	log.Error(msg)
	exit(app)
}
