package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/gwresponse/cmd/command"
	"github.com/viant/gwresponse/cmd/options"
)

// RunApp runs CLI with standard input and output
func RunApp(version string, args []string) error {
	return New(version, args, os.Stdin, os.Stdout)
}

// New parses args and executes a command
func New(version string, args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := buildOptions(args)
	if err != nil || opts == nil {
		return err
	}
	if opts.Version {
		_, err = fmt.Fprintf(stdout, "gwresponse: version: %v\n", version)
		return err
	}
	if err := opts.Init(); err != nil {
		return err
	}
	return command.New(stdin, stdout).Exec(context.Background(), opts)
}

func buildOptions(args []string) (*options.Options, error) {
	opts := &options.Options{}
	parser := flags.NewParser(opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, err
	}
	return opts, nil
}
