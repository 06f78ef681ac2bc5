package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	fetch "github.com/frankli0324/go-fetch"
	"github.com/frankli0324/go-fetch/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	method         string
	headers        []string
	data           string
	configPath     string
	maxRedirects   int
	connectTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	include        bool
	verbose        bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "fetch [flags] URL",
		Short: "Send one HTTP/1.1 request and follow its redirects.",
		Long: `fetch dials a fresh connection for every hop of the redirect chain,
keeps cookies across hops and writes the final response body to stdout.

Examples:
  fetch http://example.com/
  fetch -i -H "Accept: application/json" https://api.example.com/users
  fetch -X PUT -d @- --max-redirects 0 http://localhost:8080/upload
  fetch --config profile.yaml -v https://example.com/login`,
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.method, "method", "X", "", "request method, POST when --data is given and GET otherwise")
	f.StringArrayVarP(&o.headers, "header", "H", nil, `request header as "Name: value", may be repeated`)
	f.StringVarP(&o.data, "data", "d", "", "request body, @file reads a file and @- reads stdin")
	f.StringVar(&o.configPath, "config", "", "YAML profile with timeouts, headers and DNS settings")
	f.IntVar(&o.maxRedirects, "max-redirects", fetch.DefaultMaxRedirects, "redirect budget, 0 refuses every redirect")
	f.DurationVar(&o.connectTimeout, "connect-timeout", 0, "limit for resolving and connecting")
	f.DurationVar(&o.readTimeout, "read-timeout", 0, "limit for every single read")
	f.DurationVar(&o.writeTimeout, "write-timeout", 0, "limit for every single write")
	f.BoolVarP(&o.include, "include", "i", false, "print the status line and headers before the body")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log every hop to stderr")
	return cmd
}

func (o *options) run(cmd *cobra.Command, target string) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("max-redirects") {
		n := o.maxRedirects
		cfg.MaxRedirects = &n
	}

	logger := zap.NewNop()
	if o.verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
	}

	req, closeBody, err := o.request(cmd.InOrStdin(), target)
	if err != nil {
		return err
	}
	defer closeBody()
	cfg.Apply(req)

	client := fetch.NewClient(append(cfg.ClientOptions(),
		fetch.WithJar(fetch.NewJar()),
		fetch.WithLogger(logger),
	)...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return do(ctx, client, req, cmd.OutOrStdout(), o.include)
}

// request builds the request from the flags. The returned func releases
// the file behind --data @file.
func (o *options) request(stdin io.Reader, target string) (*fetch.Request, func(), error) {
	req := &fetch.Request{
		Method: o.method,
		URL:    target,
		Timeouts: fetch.Timeouts{
			Connect: o.connectTimeout,
			Read:    o.readTimeout,
			Write:   o.writeTimeout,
		},
	}
	for _, h := range o.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, nil, fmt.Errorf("invalid header %q, expected \"Name: value\"", h)
		}
		req.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	closeBody := func() {}
	switch {
	case o.data == "@-":
		req.Body = stdin
	case strings.HasPrefix(o.data, "@"):
		file, err := os.Open(o.data[1:])
		if err != nil {
			return nil, nil, err
		}
		closeBody = func() { file.Close() }
		// *os.File has no Size, a stat gives fixed framing for regular files
		if st, err := file.Stat(); err == nil && st.Mode().IsRegular() {
			req.Body = fetch.ReaderPayload(file, st.Size())
		} else {
			req.Body = file
		}
	case o.data != "":
		req.Body = o.data
	}
	if req.Method == "" && o.data != "" {
		req.Method = "POST"
	}
	return req, closeBody, nil
}

func do(ctx context.Context, client *fetch.Client, req *fetch.Request, out io.Writer, include bool) error {
	resp, err := client.CtxDo(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if include {
		fmt.Fprintln(out, statusColor(resp.StatusCode).Sprintf("%s %s", resp.Proto, resp.Status))
		name := color.New(color.Bold).SprintFunc()
		for _, f := range resp.Header {
			fmt.Fprintf(out, "%s: %s\n", name(f.Name), f.Value)
		}
		fmt.Fprintln(out)
	}
	_, err = io.Copy(out, resp.Body)
	return err
}

func statusColor(code int) *color.Color {
	switch {
	case code >= 500:
		return color.New(color.FgRed, color.Bold)
	case code >= 400:
		return color.New(color.FgYellow)
	case code >= 300:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgGreen)
	}
}
