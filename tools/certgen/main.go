// Package main writes a self-signed server certificate and key for serving
// the portfolio over TLS locally (TLS_CERT / TLS_KEY).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pngalemo/portfolio/internal/certgen"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "certgen:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("certgen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	hosts := fs.String("hosts", "localhost,127.0.0.1", "comma-separated DNS names and IPs")
	certPath := fs.String("cert", "certs/server.crt", "certificate output path")
	keyPath := fs.String("key", "certs/server.key", "private key output path")
	validFor := fs.Duration("valid-for", 365*24*time.Hour, "certificate lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var hostList []string
	for _, h := range strings.Split(*hosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hostList = append(hostList, h)
		}
	}

	certPEM, keyPEM, err := certgen.GenerateSelfSigned(hostList, *validFor)
	if err != nil {
		return err
	}
	if err := certgen.WritePair(*certPath, *keyPath, certPEM, keyPEM); err != nil {
		return err
	}

	fmt.Fprintf(out, "wrote %s and %s for %s\n", *certPath, *keyPath, strings.Join(hostList, ", "))
	return nil
}
