package main

import (
	"context"

	"github.com/trezcool/chuo/core"
)

// resetPassword resets the password of the user with the given email.
func (cli *commandLine) resetPassword(email, pwd string) error {
	return cli.usrSvc.ResetPassword(context.Background(), core.CleanString(email, true /* lower */), pwd)
}
