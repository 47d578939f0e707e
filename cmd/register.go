package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	valutatrade "github.com/valutatrade/hub"
	"github.com/valutatrade/hub/audit"
)

type registerCmd struct {
	username string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new account" }
func (*registerCmd) Usage() string {
	return `hub register -u <username> -p <password>

  Creates an account and logs it in. Passwords are stored salted and hashed.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username for the new account.")
	f.StringVar(&c.password, "p", "", "Password for the new account.")
}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	users, err := a.store.LoadUsers()
	if err != nil {
		return fail(err)
	}
	if _, taken := users[c.username]; taken {
		return fail(valutatrade.ErrUserExists)
	}
	user, err := valutatrade.NewUser(c.username, c.password, time.Now())
	if err != nil {
		return fail(err)
	}
	users[user.Username] = user
	if err := a.store.SaveUsers(users); err != nil {
		return fail(err)
	}
	if err := a.store.SaveSession(user.Username); err != nil {
		return fail(err)
	}
	audit.Get().Infow("register", "user", user.Username)
	fmt.Printf("Account %q created and logged in.\n", user.Username)
	return subcommands.ExitSuccess
}
