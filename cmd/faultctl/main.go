// Command faultctl toggles or reads the collector's fault-injection flag.
//
//	faultctl on|off|status
package main

import (
	"context"
	"fmt"
	"os"

	"telemetry_demo/internal/config"
	"telemetry_demo/internal/emitter"
	"telemetry_demo/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "faultctl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: faultctl on|off|status")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var opts []emitter.ClientOption
	if cfg.Auth.TokenSecret != "" {
		token, err := service.NewAuthService(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL).IssueToken("faultctl")
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		opts = append(opts, emitter.WithBearerToken(token))
	}
	client := emitter.NewClient(cfg.Emitter.Server, cfg.Emitter.Timeout, opts...)

	ctx := context.Background()
	var on bool
	switch args[0] {
	case "on":
		on, err = client.SetFault(ctx, true)
	case "off":
		on, err = client.SetFault(ctx, false)
	case "status":
		on, err = client.FaultMode(ctx)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Printf("fault_mode: %v\n", on)
	return nil
}
