package utils

import (
	"errors"
	"net/url"
)

// ParseHttpUrl turns a "tcp://[host]:port"-style listen address into a
// plain "host:port" string suitable for net.Listen/echo.Start. If no port
// is given, 8080 is assumed.
func ParseHttpUrl(urlstr string) (string, error) {
	uri, err := url.Parse(urlstr)
	if err != nil {
		return "", err
	}

	if uri.Port() == "" {
		uri.Host += ":8080"
	}

	switch uri.Scheme {
	case "tcp":
		return uri.Host, nil
	default:
		return "", errors.New("Unsupported protocol: " + uri.Scheme)
	}
}
