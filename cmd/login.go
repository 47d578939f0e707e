package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	valutatrade "github.com/valutatrade/hub"
	"github.com/valutatrade/hub/audit"
)

type loginCmd struct {
	username string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in to an account" }
func (*loginCmd) Usage() string {
	return `hub login -u <username> -p <password>

  Logs in and keeps the session until logout.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username.")
	f.StringVar(&c.password, "p", "", "Password.")
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	users, err := a.store.LoadUsers()
	if err != nil {
		return fail(err)
	}
	user, ok := users[c.username]
	if !ok || !user.Authenticate(c.password) {
		return fail(valutatrade.ErrBadCredentials)
	}
	if err := a.store.SaveSession(user.Username); err != nil {
		return fail(err)
	}
	audit.Get().Infow("login", "user", user.Username)
	fmt.Printf("Logged in as %q.\n", user.Username)
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string             { return "logout" }
func (*logoutCmd) Synopsis() string         { return "log out of the current session" }
func (*logoutCmd) Usage() string            { return "hub logout\n" }
func (*logoutCmd) SetFlags(f *flag.FlagSet) {}

func (c *logoutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	username := a.store.Session()
	if username == "" {
		fmt.Println("Nobody is logged in.")
		return subcommands.ExitSuccess
	}
	if err := a.store.ClearSession(); err != nil {
		return fail(err)
	}
	audit.Get().Infow("logout", "user", username)
	fmt.Printf("Logged out %q.\n", username)
	return subcommands.ExitSuccess
}
