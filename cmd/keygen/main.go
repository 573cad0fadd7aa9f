// keygen creates credentials for the gateway: bcrypt hashes for
// GATEWAY_API_KEY_HASH and HS256 bearer tokens signed with GATEWAY_JWT_SECRET.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/yourusername/open-stdnum-gateway/pkg/auth"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  keygen hash KEY
  keygen token --secret SECRET [--subject NAME] [--role ROLE] [--ttl DURATION]
`)
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "hash":
		return runHash(args[1:], stdout, stderr)
	case "token":
		return runToken(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	}
	fmt.Fprintf(stderr, "error: unknown command %q\n", args[0])
	usage(stderr)
	return 2
}

func runHash(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 || args[0] == "" {
		usage(stderr)
		return 2
	}
	hash, err := auth.HashKey(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, hash)
	return 0
}

func runToken(args []string, stdout, stderr io.Writer) int {
	var secret, subject, role string
	var ttl time.Duration

	flagSet := pflag.NewFlagSet("keygen token", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&secret, "secret", os.Getenv("GATEWAY_JWT_SECRET"), "signing secret (default $GATEWAY_JWT_SECRET)")
	flagSet.StringVar(&subject, "subject", "api-client", "token subject")
	flagSet.StringVar(&role, "role", "user", "role claim")
	flagSet.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, 0 for no expiry")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if secret == "" {
		fmt.Fprintln(stderr, "error: --secret or GATEWAY_JWT_SECRET is required")
		return 2
	}

	token, err := auth.GenerateToken([]byte(secret), subject, role, ttl)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, token)
	return 0
}
