package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

func secsSinceEpoch(now time.Time) (int64, error) {
	secs := now.Unix()
	if secs < 0 {
		return 0, fmt.Errorf("unable to calculate current time (time went backwards): %v", now)
	}
	return secs, nil
}

func parseUint8(values url.Values, key string) (uint8, error) {
	if !values.Has(key) {
		return 0, fmt.Errorf("missing %s", key)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(values.Get(key)), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return uint8(n), nil
}

func holeName(n uint8) string {
	return fmt.Sprintf("Hul %d", n)
}

// pageHref builds the query string for a page, keeping the u, t, h order.
func pageHref(user string, tournament *string, hole *uint8) string {
	var b strings.Builder
	b.WriteString("?u=")
	b.WriteString(url.QueryEscape(user))
	if tournament != nil {
		b.WriteString("&t=")
		b.WriteString(url.QueryEscape(*tournament))
		if hole != nil {
			b.WriteString("&h=")
			b.WriteString(strconv.Itoa(int(*hole)))
		}
	}
	return b.String()
}
