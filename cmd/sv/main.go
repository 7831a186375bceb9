package main

import (
	"os"

	"simvault/cmd/sv/commands"
)

func main() {
	// 库只返回错误；在这个最外层边界上，错误一律响亮地退出
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
