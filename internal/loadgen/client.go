package loadgen

import (
	"time"

	"github.com/valyala/fasthttp"
)

// Getter issues a single GET and reports the response status.
type Getter interface {
	Get(url string) (int, error)
}

// Client is a fasthttp-backed Getter shared by all virtual users.
type Client struct {
	c       *fasthttp.Client
	timeout time.Duration
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		c: &fasthttp.Client{
			Name:                "mirrorlab-loadgen",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
		},
		timeout: timeout,
	}
}

func (c *Client) Get(url string) (int, error) {
	var (
		req  = fasthttp.AcquireRequest()
		resp = fasthttp.AcquireResponse()
	)
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.c.DoTimeout(req, resp, c.timeout); err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}
