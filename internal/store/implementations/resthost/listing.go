package resthost

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
	"gitlab.com/velorent/booking-widget/internal/config"
	"gitlab.com/velorent/booking-widget/internal/schema"
	"gitlab.com/velorent/booking-widget/internal/tools/requesting"
)

const defaultListLimit = 20

type listingRequest struct {
	cfg    config.RemoteStore
	table  string
	params schema.ListParams
	logger *zerolog.Logger
}

type listingQuery struct {
	Select string `url:"select"`
	Order  string `url:"order"`
	Limit  int    `url:"limit"`
}

func (l *listingRequest) Execute(ctx context.Context, httpTransport *http.Transport) (schema.BookingList, error) {
	list := schema.BookingList{
		Bookings: []schema.StoredBooking{},
	}

	callsBucket := schema.NewRemoteCallsBucket()
	errorsBucket := schema.NewErrorsBucket()

	list.RemoteCalls = callsBucket.RemoteCalls()
	list.Errors = errorsBucket.Errors()

	if !l.cfg.Configured() {
		errorsBucket.AddError(schema.NewConfigError("remote store credentials missing"))
		return list, nil
	}

	limit := l.params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	values, err := query.Values(listingQuery{
		Select: "id,customer_name,vehicle_model,status,created_at",
		Order:  "id.desc",
		Limit:  limit,
	})
	if err != nil {
		return list, err
	}

	client := &http.Client{
		Timeout: time.Duration(l.cfg.TimeoutMs) * time.Millisecond,
		Transport: &requesting.InterceptorTransport{
			Transport: httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(l.logger),
				requesting.NewBucketTransportMiddleware(&callsBucket),
			},
		},
	}

	url := l.cfg.BaseURL + "/rest/v1/" + l.table + "?" + values.Encode()
	c := context.WithValue(ctx, schema.RemoteCallNameKey, schema.ListCall)

	httpRequest, _ := http.NewRequestWithContext(c, http.MethodGet, url, nil)
	httpRequest.Header.Set("apikey", l.cfg.AnonKey)
	httpRequest.Header.Set("Authorization", "Bearer "+l.cfg.AnonKey)

	rs, tierErr := requesting.RequestErrors(client.Do(httpRequest))
	if tierErr != nil {
		errorsBucket.AddError(*tierErr)
		return list, nil
	}
	defer rs.Body.Close()

	bodyBytes, _ := io.ReadAll(rs.Body)

	if err := json.Unmarshal(bodyBytes, &list.Bookings); err != nil {
		errorsBucket.AddError(schema.NewRemoteError(err.Error()))
	}

	return list, nil
}

// Ping probes the row API root so diagnostics can tell connectivity problems
// from schema or policy problems.
func (h *restHost) Ping(ctx context.Context, logger *zerolog.Logger) error {
	if !h.cfg.Configured() {
		return errors.New("remote store credentials missing")
	}

	client := &http.Client{
		Timeout: time.Duration(h.cfg.TimeoutMs) * time.Millisecond,
		Transport: &requesting.InterceptorTransport{
			Transport: h.httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(logger),
			},
		},
	}

	c := context.WithValue(ctx, schema.RemoteCallNameKey, schema.PingCall)

	httpRequest, _ := http.NewRequestWithContext(c, http.MethodGet, h.cfg.BaseURL+"/rest/v1/", nil)
	httpRequest.Header.Set("apikey", h.cfg.AnonKey)

	rs, tierErr := requesting.RequestErrors(client.Do(httpRequest))
	if tierErr != nil {
		return errors.New(tierErr.Message)
	}
	rs.Body.Close()

	return nil
}
