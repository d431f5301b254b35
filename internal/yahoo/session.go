package yahoo

import (
	"context"
	"strings"
)

const crumbPath = "/v1/test/getcrumb"

// ensureCrumb returns the session crumb, performing the cookie + crumb
// handshake on first use. Concurrent callers share one handshake, which
// runs detached from any single caller so one cancellation cannot fail
// the others. Each caller still stops waiting when its own ctx ends.
func (c *Client) ensureCrumb(ctx context.Context) (string, error) {
	if crumb := c.currentCrumb(); crumb != "" {
		return crumb, nil
	}

	ch := c.group.DoChan("crumb", func() (any, error) {
		if crumb := c.currentCrumb(); crumb != "" {
			return crumb, nil
		}
		hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetchCrumb(hctx)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) currentCrumb() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.crumb
}

func (c *Client) fetchCrumb(ctx context.Context) (string, error) {
	// The cookie endpoint answers 404 but still sets the session cookie.
	if c.cookieURL != "" {
		if _, _, err := c.get(ctx, c.cookieURL); err != nil {
			return "", err
		}
	}

	body, status, err := c.get(ctx, c.baseURL+crumbPath)
	if err != nil {
		return "", err
	}
	crumb := strings.TrimSpace(string(body))
	if status >= 400 || crumb == "" || strings.HasPrefix(crumb, "<") || strings.HasPrefix(crumb, "{") {
		return "", &HTTPError{StatusCode: status, URL: crumbPath, Body: truncate(crumb, maxErrorBody)}
	}

	c.mu.Lock()
	c.crumb = crumb
	c.mu.Unlock()

	c.logger.Debug().Msg("Yahoo session crumb acquired")
	return crumb, nil
}

func (c *Client) resetCrumb() {
	c.mu.Lock()
	c.crumb = ""
	c.mu.Unlock()
}
