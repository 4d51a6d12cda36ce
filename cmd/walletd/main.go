package main

import "github.com/trymyra/walletd/internal/cli"

func main() {
	cli.Execute()
}
