package requests

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"
)

const (
	networkErrorPrefix = "Network Error: "
	otherErrorPrefix   = "An error occurred: "
)

var errEmptyURL = errors.New("url is empty")

// Request construction failures net/http reports wrapped in *url.Error.
var constructionErrors = []string{
	"unsupported protocol scheme",
	"no Host in request URL",
}

// isNetworkError reports whether err came from the connection or stream
// rather than from request construction. Transport failures surface as
// *url.Error with the request method as Op; protocol and TLS errors count.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Op == "parse" {
			return false
		}
		msg := urlErr.Err.Error()
		for _, c := range constructionErrors {
			if strings.Contains(msg, c) {
				return false
			}
		}
		return true
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.EPIPE):
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// failureMessage renders err with the prefix for its class.
func failureMessage(err error) string {
	if isNetworkError(err) {
		return networkErrorPrefix + err.Error()
	}
	return otherErrorPrefix + err.Error()
}
