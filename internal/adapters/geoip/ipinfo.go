package geoip

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ipinfo/go/v2/ipinfo"

	portssvc "github.com/hardiknj/auth_session_app/internal/core/ports/services"
	"github.com/hardiknj/auth_session_app/internal/platform/config"
)

const unknownLocation = "Unknown Location"

// lookupTimeout bounds the outbound call so a slow lookup can never stall the
// enclosing request.
const lookupTimeout = 3 * time.Second

// ipinfoLocator resolves coarse locations via ipinfo.io. Every failure path
// degrades to a placeholder; this service never fails a request.
type ipinfoLocator struct {
	client *ipinfo.Client
	logger *slog.Logger
}

// NewIPInfoLocator creates a GeoLocatorSvc backed by ipinfo.io. Without a token the
// locator still answers, resolving everything non-local to the placeholder.
func NewIPInfoLocator(cfg *config.Config, logger *slog.Logger) portssvc.GeoLocatorSvc {
	var client *ipinfo.Client
	if cfg.IPInfoToken != "" {
		client = ipinfo.NewClient(&http.Client{Timeout: lookupTimeout}, nil, cfg.IPInfoToken)
	}
	return &ipinfoLocator{client: client, logger: logger}
}

func (l *ipinfoLocator) LocateIP(ctx context.Context, ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return unknownLocation
	}
	if parsed.IsLoopback() {
		return "Localhost"
	}
	if l.client == nil {
		return unknownLocation
	}

	info, err := l.client.GetIPInfo(parsed)
	if err != nil {
		l.logger.Warn("IP geolocation lookup failed", slog.String("ip", ip), slog.String("error", err.Error()))
		return unknownLocation
	}

	switch {
	case info.City != "" && info.Country != "":
		return info.City + ", " + info.Country
	case info.Country != "":
		return info.Country
	default:
		return unknownLocation
	}
}
