package server

import (
	"context"
	"fmt"

	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/program"
)

// LoginController binds the sample program's callback: it echoes the
// credentials back through notifier, the way the demo page raises an alert.
func LoginController(notifier interp.Notifier) *interp.Controller {
	return interp.NewController(map[string]interp.Callback{
		program.SampleCallback: func(args ...string) error {
			user, password := arg(args, 0), arg(args, 1)
			return notifier.Notify(context.Background(), fmt.Sprintf("User: %s, Password: %s", user, password))
		},
	})
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
