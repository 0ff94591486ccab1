package main

import (
	"context"
	"fmt"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/user"
)

// addUser creates a new user.User with the given role.
func (cli *commandLine) addUser(name, email, pwd, role string) error {
	nu := user.NewUser{
		Name:     core.CleanString(name),
		Email:    core.CleanString(email, true /* lower */),
		Password: pwd,
		Role:     core.CleanString(role, true /* lower */),
	}
	var known bool
	for _, role := range user.AllRoles {
		if nu.Role == role {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("invalid role %q", nu.Role)
	}
	_, err := cli.usrSvc.Register(context.Background(), nu)
	return err
}
