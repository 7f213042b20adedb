// Package aleph is the ILS driver talking to an Ex Libris Aleph server. Most
// operations go through the REST/XML "DLF" interface; patron profile lookups
// fall back to the legacy key-value X-Server when credentials for it are
// configured.
package aleph

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/pumlitsch/vufind-kvo/core/ports/catalog"
)

// dlfReplyOK is the success sentinel of the DLF reply envelope.
const dlfReplyOK = "0000"

type connMode int

const (
	// restOnly uses the DLF interface for everything.
	restOnly connMode = iota
	// legacyKeyValue additionally has X-Server credentials and routes
	// profile and barcode lookups through it.
	legacyKeyValue
)

// Client talks to one Aleph installation. It holds configuration and
// connection handles only, so a single instance is safe for concurrent use.
type Client struct {
	lg  *slog.Logger
	cfg catalog.Config

	mode connMode

	cb *gobreaker.CircuitBreaker

	dlf *resty.Client
	x   *resty.Client

	// dueDates are the compiled due-date override rules, in declared order.
	dueDates []dueDateRule

	translator *Translator
}

type dueDateRule struct {
	re    *regexp.Regexp
	label string
}

var _ catalog.Client = (*Client)(nil)

// New validates the required settings and builds the client. translator may
// be nil, in which case holdings resolution degrades to the raw item fields.
func New(lg *slog.Logger, cfg catalog.Config, translator *Translator) (*Client, error) {
	required := []struct {
		key string
		ok  bool
	}{
		{"Catalog/host", cfg.Host != ""},
		{"Catalog/bib", len(cfg.Bibs) > 0},
		{"Catalog/useradm", cfg.UserAdm != ""},
		{"Catalog/admlib", cfg.AdmLib != ""},
		{"Catalog/dlfport", cfg.DLFPort != ""},
		{"Catalog/available_statuses", len(cfg.AvailableStatuses) > 0},
		{"sublibadm", len(cfg.SubLibAdm) > 0},
	}
	for _, r := range required {
		if !r.ok {
			return nil, &ConfigError{Key: r.key}
		}
	}

	if cfg.MaxRenewals == 0 {
		cfg.MaxRenewals = 3
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	c := Client{
		lg:         lg,
		cfg:        cfg,
		mode:       restOnly,
		dlf:        newRest(cfg.Host, cfg.DLFPort, timeout),
		translator: translator,
	}

	if cfg.WWWUser != "" && cfg.WWWPassword != "" {
		c.mode = legacyKeyValue
		xport := cfg.XPort
		if xport == "" {
			xport = "80"
		}
		c.x = newRest(cfg.Host, xport, timeout)
	}

	for _, dd := range cfg.DueDates {
		re, err := regexp.Compile(dd.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid duedates pattern %q: %w", dd.Pattern, err)
		}
		c.dueDates = append(c.dueDates, dueDateRule{re: re, label: dd.Label})
	}

	if cfg.MaxFails > 0 {
		maxFails := cfg.MaxFails
		c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "aleph",
			Timeout: time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFails
			},
		})
	}

	return &c, nil
}

func newRest(host, port string, timeout time.Duration) *resty.Client {
	client := resty.New().
		SetTransport(&http.Transport{
			MaxIdleConns:       10,
			IdleConnTimeout:    30 * time.Second,
			DisableCompression: true,
		}).
		SetBaseURL(fmt.Sprintf("http://%s", net.JoinHostPort(host, port)))
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return client
}

// Translator exposes the status translator the client was built with.
func (c *Client) Translator() *Translator { return c.translator }

func (c *Client) execute(req *resty.Request, method, url string) (*resty.Response, error) {
	if c.cb == nil {
		return req.Execute(method, url)
	}

	res, err := c.cb.Execute(func() (any, error) {
		return req.Execute(method, url)
	})
	if err != nil {
		return nil, err
	}

	resp, ok := res.(*resty.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", res)
	}
	return resp, nil
}

// restDLF performs one DLF call: segments are joined into the request path,
// the configured language rides along as the lang parameter, and the reply
// envelope is checked before out is populated. A reply code other than
// dlfReplyOK is a RemoteError carrying the raw body.
func (c *Client) restDLF(
	ctx context.Context, segments []string, params map[string]string,
	method string, body string, out any,
) error {
	path := "/rest-dlf/" + strings.Join(segments, "/") + "/"

	req := c.dlf.R().
		SetContext(ctx).
		SetQueryParam("lang", c.cfg.Language)
	for k, v := range params {
		req.SetQueryParam(k, v)
	}
	if body != "" {
		req.SetHeader("Content-Type", "application/xml").SetBody(body)
	}

	if c.cfg.Debug {
		c.lg.Debug("DLF request", "path", path, "method", method)
	}

	resp, err := c.execute(req, method, path)
	if err != nil {
		return &TransportError{URL: path, Err: err}
	}

	raw := resp.Body()

	var env dlfEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return &RemoteError{Message: "malformed DLF response: " + err.Error(), Response: raw}
	}
	if env.ReplyCode != dlfReplyOK {
		c.lg.Error("DLF request failed",
			"url", resp.Request.URL,
			"reply-code", env.ReplyCode,
			"reply-message", env.ReplyText)
		return &RemoteError{Code: env.ReplyCode, Message: env.ReplyText, Response: raw}
	}

	if out != nil {
		if err := xml.Unmarshal(raw, out); err != nil {
			return &RemoteError{Message: "malformed DLF response: " + err.Error(), Response: raw}
		}
	}
	return nil
}

// xRequest performs one legacy X-Server call. auth appends the configured
// web-service credentials.
func (c *Client) xRequest(
	ctx context.Context, op string, params map[string]string, auth bool, out any,
) error {
	if c.mode != legacyKeyValue {
		return &ConfigError{Key: "Catalog/wwwuser"}
	}

	req := c.x.R().
		SetContext(ctx).
		SetQueryParam("op", op)
	for k, v := range params {
		req.SetQueryParam(k, v)
	}
	if auth {
		req.SetQueryParam("user_name", c.cfg.WWWUser)
		req.SetQueryParam("user_password", c.cfg.WWWPassword)
	}

	if c.cfg.Debug {
		c.lg.Debug("X-Server request", "op", op)
	}

	resp, err := c.execute(req, resty.MethodGet, "/X")
	if err != nil {
		return &TransportError{URL: "/X?op=" + op, Err: err}
	}

	raw := resp.Body()

	var env xEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return &RemoteError{Message: "malformed X-Server response: " + err.Error(), Response: raw}
	}
	if msg := strings.TrimSpace(env.Error); msg != "" {
		c.lg.Error("X-Server request failed", "op", op, "error", msg)
		return &RemoteError{Message: msg, Response: raw}
	}

	if out != nil {
		if err := xml.Unmarshal(raw, out); err != nil {
			return &RemoteError{Message: "malformed X-Server response: " + err.Error(), Response: raw}
		}
	}
	return nil
}

// parseID splits a record id into its bibliographic base and system number.
// With a single configured base the id is the bare system number; otherwise
// ids are prefixed "BASE-".
func (c *Client) parseID(id string) (base, sysNo string) {
	if len(c.cfg.Bibs) == 1 {
		return c.cfg.Bibs[0], id
	}
	parts := strings.SplitN(id, "-", 2)
	if len(parts) < 2 {
		return c.cfg.Bibs[0], id
	}
	return parts[0], parts[1]
}

// barcodeToID resolves an item barcode to a record id by searching each
// configured base through the X-Server. Lookup problems are soft: a fine
// record without a resolvable id simply has no link target.
func (c *Client) barcodeToID(ctx context.Context, barcode string) string {
	if c.mode != legacyKeyValue {
		return ""
	}

	for _, base := range c.cfg.Bibs {
		var found findResponse
		err := c.xRequest(ctx, "find", map[string]string{
			"base":    base,
			"request": "BAR=" + barcode,
		}, false, &found)
		if err != nil {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(found.NoRecords)); err != nil || n != 1 {
			continue
		}

		var pres presentResponse
		err = c.xRequest(ctx, "present", map[string]string{
			"set_number": strings.TrimSpace(found.SetNumber),
			"set_entry":  "1",
		}, false, &pres)
		if err != nil {
			continue
		}

		doc := strings.TrimSpace(pres.DocNumber)
		if doc == "" {
			continue
		}
		if len(c.cfg.Bibs) == 1 {
			return doc
		}
		return base + "-" + doc
	}

	c.lg.Warn("barcode not found", "barcode", barcode)
	return ""
}
