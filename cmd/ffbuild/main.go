package main

import (
	"github.com/mediaforge/ffbuild/pkg/cli"
	"github.com/mediaforge/ffbuild/pkg/errors"
	"github.com/mediaforge/ffbuild/pkg/util/console"
)

func main() {
	cmd, err := cli.NewRootCommand()
	if err != nil {
		console.Fatalf("%s", err)
	}

	if err = cmd.Execute(); err != nil {
		if code := errors.Code(err); code != "" {
			console.Fatalf("%s (%s)", err, code)
		}
		console.Fatalf("%s", err)
	}
}
