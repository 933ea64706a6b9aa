package main

import (
	"context"

	"webdoc/cmd/webdoc/commands"
	"webdoc/lib/osutil"
	"webdoc/lib/telemetry"
)

func main() {
	ctx := osutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "webdoc")
	if err != nil {
		osutil.Fatal("failed to set up telemetry", err)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
