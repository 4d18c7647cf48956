// Command rtmpinput provisions AWS MediaLive RTMP push inputs.
//
// Two variants share one engine:
//
//	rtmpinput create   validates every supplied ID and prompts for gaps
//	rtmpinput quick    trusts supplied IDs and creates defaults, never prompts
//
// For detailed usage information, run:
//
//	rtmpinput --help
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rtmpinput/logger"
)

const (
	packageName = "main"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, newApp(), os.Args[1:])
	stop()
	logger.Sync()
	os.Exit(code)
}

// execute runs the CLI and maps the outcome to an exit code.
func execute(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !stderrors.As(err, &reported) {
			fmt.Fprintln(a.stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
