// Command mdstudio-host is the backend process of the desktop editor. The
// files named on the command line are queued for the front-end, which talks
// to the host over length-prefixed JSON frames on stdin and stdout.
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/goliatone/go-mdstudio/cmd/internal/bootstrap"
)

const logFileName = "mdstudio-host.log"

var moduleBuilder = bootstrap.BuildModule

func main() {
	// stdout carries protocol frames, so logs go to a file.
	var logWriter io.Writer = io.Discard
	if logFile, err := bootstrap.OpenLogFile(logFileName); err == nil {
		defer logFile.Close()
		log.SetOutput(logFile)
		logWriter = logFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, logWriter); err != nil {
		log.Printf("mdstudio-host: %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer, logWriter io.Writer) error {
	module, err := moduleBuilder(bootstrap.Options{
		LaunchArgs: args,
		LogWriter:  logWriter,
	})
	if err != nil {
		return err
	}
	return module.Bridge().Serve(ctx, in, out)
}
