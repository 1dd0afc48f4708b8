// client.go contains everything that talks to krakowairport.pl, parsing the
// page itself lives in parse.go.

package krakowairport

import (
	"context"
	"errors"
	"fmt"
	"krkarrivals/internal/components/assert"
	"krkarrivals/internal/components/telemetry"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultUrl       = "https://krakowairport.pl/pl/pasazer/loty/przyloty"
	DefaultUserAgent = "Mozilla/5.0"
	DefaultTimeout   = time.Second * 30
)

const (
	report_client_fetch_arrivals_page = "client.fetch-arrivals-page"
	report_client_fetch_arrivals      = "client.fetch-arrivals"
)

var tracer = otel.Tracer("krkarrivals/scrapers/krakowairport")

// ErrUnexpectedStatus is wrapped by every *StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// StatusError is returned when the arrivals page responds with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Url        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned %s", ErrUnexpectedStatus.Error(), e.Url, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

type ClientOptions struct {
	// Url defaults to DefaultUrl.
	Url string
	// UserAgent defaults to DefaultUserAgent.
	UserAgent string
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
	// InstrumentOutput receives a dump of every HTTP exchange, nil disables it.
	InstrumentOutput telemetry.InstrumentOutput
}

type Client struct {
	url  string
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("krakowairport", tel)

	if opts.Url == "" {
		opts.Url = DefaultUrl
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	parsedUrl, err := url.Parse(opts.Url)
	if err != nil {
		return nil, err
	}
	if parsedUrl.Hostname() == "" {
		return nil, fmt.Errorf("url %q has no host", opts.Url)
	}

	httpClient := resty.New()
	httpClient.SetHeader("User-Agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)
	httpClient.SetRetryCount(0)

	telemetry.InstrumentResty(httpClient, tel, opts.InstrumentOutput)

	return &Client{
		url:  opts.Url,
		http: httpClient,
		tel:  tel,
	}, nil
}

// FetchArrivalsPage makes a single GET request for the arrivals page and returns
// the body, there are no retries.
func (c *Client) FetchArrivalsPage(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "client:FetchArrivalsPage")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(c.url)
	if err != nil {
		err = fmt.Errorf("get %s: %w", c.url, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch arrivals page")
		c.tel.ReportBroken(report_client_fetch_arrivals_page, err)
		return "", err
	}

	span.SetAttributes(attribute.Int("status_code", res.StatusCode()))
	if !res.IsSuccess() {
		err := &StatusError{
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
			Url:        c.url,
		}
		span.SetStatus(codes.Error, err.Error())
		c.tel.ReportBroken(report_client_fetch_arrivals_page, err)
		return "", err
	}

	return res.String(), nil
}

// FetchArrivals fetches the arrivals page and parses it.
func (c *Client) FetchArrivals(ctx context.Context) ([]Arrival, error) {
	ctx, span := tracer.Start(ctx, "client:FetchArrivals")
	defer span.End()

	page, err := c.FetchArrivalsPage(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch arrivals page")
		return nil, err
	}

	arrivals, err := ParseArrivals(ctx, strings.NewReader(page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse arrivals page")
		c.tel.ReportBroken(report_client_fetch_arrivals, fmt.Errorf("parse html: %w", err))
		return nil, err
	}

	if len(arrivals) == 0 {
		c.tel.ReportWarning(report_client_fetch_arrivals, "no arrivals found on page", c.url)
	}
	c.tel.ReportCount(report_client_fetch_arrivals, int64(len(arrivals)))

	return arrivals, nil
}
