package main

import (
	"context"

	"hudsmenu-backend/cmd/hudsmenu/commands"
	"hudsmenu-backend/lib/serviceutil"
	"hudsmenu-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()

	tel, err := telemetry.SetupFromEnv(ctx, "hudsmenu")
	if err != nil {
		serviceutil.Fatal("failed to set up telemetry", err)
	}
	defer tel.Shutdown(ctx)

	commands.ExecuteContext(ctx)
}
