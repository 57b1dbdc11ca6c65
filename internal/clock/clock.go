// Package clock timestamps training runs, preferring an NTP server over the
// local clock when one is configured.
package clock

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/go-logr/logr"
)

const defaultTimeout = 2 * time.Second

// Source returns the current time.
type Source func() time.Time

// Local is the machine clock.
func Local() time.Time { return time.Now() }

// NTP returns a Source that asks server for the clock offset on every call
// and falls back to the local clock when the query fails. An empty server
// returns Local.
func NTP(ctx context.Context, server string, timeout time.Duration) Source {
	if server == "" {
		return Local
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := logr.FromContextOrDiscard(ctx).WithValues("server", server)
	return func() time.Time {
		resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
		if err == nil {
			err = resp.Validate()
		}
		if err != nil {
			logger.Info("NTP query failed, using local clock", "error", err.Error())
			return time.Now()
		}
		return time.Now().Add(resp.ClockOffset)
	}
}
