package main

import (
	"github.com/armii/platform-admin/app/cmd"
)

// @title Platform Admin API
// @version 1.0
// @description Register platforms, attach account addresses, and connect one account per platform.

// @host  localhost:8000
// @BasePath /api/v1

func main() {
	cmd.StartApp()
}
