package main

import (
	"github.com/alecthomas/kong"

	"kitchengram.app/KitchenGram/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("KitchenGram"), kong.Description("KitchenGram is a recipe sharing backend."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
