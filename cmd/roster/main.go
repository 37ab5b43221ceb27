// Package main запускает консольную версию отчета по студентам
package main

import (
	"os"

	"github.com/Ultrahd-dev/student-roster/cmd/roster/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
