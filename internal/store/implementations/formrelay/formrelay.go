package formrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/velorent/booking-widget/internal/config"
	"gitlab.com/velorent/booking-widget/internal/schema"
	"gitlab.com/velorent/booking-widget/internal/tools/requesting"
)

// formRelay posts the simplified payload to the external form endpoint.
// The response is opaque by contract: the endpoint's cross origin policy
// forbids reading it, so a delivered request counts as "outcome unknown" and
// only a transport level failure fails the tier.
type formRelay struct {
	cfg           config.Relay
	httpTransport *http.Transport
}

func New(cfg config.Relay) *formRelay {
	transport := http.DefaultTransport.(*http.Transport)
	transport.DisableKeepAlives = true

	return &formRelay{
		cfg:           cfg,
		httpTransport: transport,
	}
}

func (f *formRelay) RelayBooking(ctx context.Context, payload schema.RelayPayload, logger *zerolog.Logger) error {
	if f.cfg.URL == "" {
		return errors.New("form relay endpoint not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	client := &http.Client{
		Timeout: time.Duration(f.cfg.TimeoutMs) * time.Millisecond,
		Transport: &requesting.InterceptorTransport{
			Transport: f.httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(logger),
			},
		},
	}

	c := context.WithValue(ctx, schema.RemoteCallNameKey, schema.RelayCall)

	httpRequest, _ := http.NewRequestWithContext(c, http.MethodPost, f.cfg.URL, bytes.NewBuffer(body))
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Accept", "application/json")

	response, err := client.Do(httpRequest)
	if err != nil {
		return err
	}

	// drain without parsing, any delivered status is accepted
	_, _ = io.Copy(io.Discard, response.Body)
	response.Body.Close()

	logger.Info().
		Str("label", "form-relay").
		Int("code", response.StatusCode).
		Msg("Relay delivery handed off, outcome unknown")

	return nil
}
