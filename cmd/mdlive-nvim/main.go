package main

import (
	"log"

	"github.com/neovim/go-client/nvim/plugin"

	"mdlive/internal/host"
)

// The binary runs as a Neovim remote plugin: it connects over stdio,
// registers the mdlive commands, and serves requests until the host exits.
func main() {
	plugin.Main(func(p *plugin.Plugin) error {
		log.Println("[mdlive] registering handlers")
		return host.Register(p)
	})
}
