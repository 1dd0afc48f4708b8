package main

import (
	"krkarrivals/cmd/krkarrivals/commands"
	"krkarrivals/internal/components/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
