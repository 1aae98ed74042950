package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Request the target URL through each configured proxy."`
}

type ProxyCheckCmd struct {
	Target  string `help:"Target URL (default: configured target_url)."`
	Timeout int    `help:"Timeout in seconds." default:"15"`
}

type ProxyCheckResult struct {
	Proxy     string `json:"proxy"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	proxies := ctx.Config.Proxies
	if len(proxies) == 0 {
		return fmt.Errorf("no proxies configured")
	}
	target := p.Target
	if target == "" {
		target = ctx.Config.TargetURL
	}
	timeout := time.Duration(p.Timeout) * time.Second

	results := make([]ProxyCheckResult, 0, len(proxies))
	for _, proxy := range proxies {
		results = append(results, checkProxy(ctx, proxy, target, timeout))
	}
	return writeProxyResults(ctx, results)
}

func checkProxy(ctx *Context, proxy, target string, timeout time.Duration) ProxyCheckResult {
	result := ProxyCheckResult{Proxy: proxy, Status: "error"}

	client, err := newNetworkClient(ctx, []string{proxy}, timeout)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	reqCtx, cancel := context.WithTimeout(ctx.context(), timeout)
	defer cancel()
	req, err := fhttp.NewRequestWithContext(reqCtx, fhttp.MethodGet, target, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	_ = resp.Body.Close()

	result.LatencyMS = time.Since(start).Milliseconds()
	result.Status = fmt.Sprintf("%d", resp.StatusCode)
	ctx.Logger.Debug().Str("proxy", proxy).Int("status", resp.StatusCode).Msg("proxy checked")
	return result
}

func writeProxyResults(ctx *Context, results []ProxyCheckResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "proxy\tstatus\tlatency_ms\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", res.Proxy, res.Status, res.LatencyMS, res.Error)
	}
	return tw.Flush()
}
