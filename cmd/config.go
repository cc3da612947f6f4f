package cmd

import (
	"fmt"

	"github.com/nibzard/todolist-go/internal/config"
)

// configCommand prints an example config file.
func (a *app) configCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	fmt.Fprint(a.stdout, config.ExampleConfig())
	return nil
}
