package main

import (
	"github.com/dkravets812/invtrack/cmd/invtrack/commands"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	commands.Execute()
}
