package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// LinkStatus follows the usual wireless driver convention: negative values
// are failures, LinkUp means an address was obtained.
type LinkStatus int

const (
	LinkBadAuth LinkStatus = -3
	LinkNoNet   LinkStatus = -2
	LinkFail    LinkStatus = -1
	LinkDown    LinkStatus = 0
	LinkJoin    LinkStatus = 1
	LinkNoIP    LinkStatus = 2
	LinkUp      LinkStatus = 3
)

func (s LinkStatus) String() string {
	switch s {
	case LinkBadAuth:
		return "bad_auth"
	case LinkNoNet:
		return "no_net"
	case LinkFail:
		return "fail"
	case LinkDown:
		return "down"
	case LinkJoin:
		return "joining"
	case LinkNoIP:
		return "no_ip"
	case LinkUp:
		return "up"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Connecting reports whether the link is still working on an association.
func (s LinkStatus) Connecting() bool {
	return s >= LinkDown && s < LinkUp
}

// Link is the network association capability.
type Link interface {
	Connected() bool
	// Connect starts an association and returns without waiting for it.
	Connect(ssid, password string) error
	Status() LinkStatus
}

// ProbeLink stands in for a wireless association on hosts that are already
// networked: connecting means reaching a probe URL. An empty probe URL
// reports the link as up immediately.
type ProbeLink struct {
	probeURL   string
	httpClient *http.Client

	mu      sync.Mutex
	status  LinkStatus
	attempt uint64
}

func NewProbeLink(probeURL string, timeout time.Duration) *ProbeLink {
	return &ProbeLink{
		probeURL:   probeURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (l *ProbeLink) Connected() bool {
	return l.Status() == LinkUp
}

func (l *ProbeLink) Status() LinkStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

func (l *ProbeLink) Connect(ssid, password string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.attempt++
	if l.probeURL == "" {
		l.status = LinkUp
		return nil
	}

	l.status = LinkJoin
	attempt := l.attempt
	slog.Debug("Probing network link", "ssid", ssid, "probe_url", l.probeURL, "attempt", attempt)

	go func() {
		status := l.probe()

		l.mu.Lock()
		defer l.mu.Unlock()
		// A newer attempt owns the status.
		if l.attempt != attempt {
			slog.Debug("Discarding stale probe result", "attempt", attempt, "status", status)
			return
		}
		l.status = status
	}()

	return nil
}

func (l *ProbeLink) probe() LinkStatus {
	req, err := http.NewRequestWithContext(context.Background(), "GET", l.probeURL, nil)
	if err != nil {
		return LinkFail
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return LinkNoNet
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return LinkFail
	}
	return LinkUp
}
