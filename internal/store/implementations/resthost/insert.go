package resthost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/velorent/booking-widget/internal/config"
	"gitlab.com/velorent/booking-widget/internal/schema"
	"gitlab.com/velorent/booking-widget/internal/tools/requesting"
)

type rowInsert struct {
	cfg      config.RemoteStore
	table    string
	callName schema.RemoteCallName
	body     []byte
	logger   *zerolog.Logger
}

type insertedRow struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func (r *rowInsert) Execute(ctx context.Context, httpTransport *http.Transport) schema.StoreResponse {
	response := schema.StoreResponse{}
	response.Status = schema.StoreResponseStatusFailed

	callsBucket := schema.NewRemoteCallsBucket()
	errorsBucket := schema.NewErrorsBucket()

	response.RemoteCalls = callsBucket.RemoteCalls()
	response.Errors = errorsBucket.Errors()

	// Missing credentials fail the tier before any network attempt.
	if !r.cfg.Configured() {
		errorsBucket.AddError(schema.NewConfigError("remote store credentials missing"))
		return response
	}

	client := &http.Client{
		Timeout: time.Duration(r.cfg.TimeoutMs) * time.Millisecond,
		Transport: &requesting.InterceptorTransport{
			Transport: httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(r.logger),
				requesting.NewBucketTransportMiddleware(&callsBucket),
			},
		},
	}

	row, tierErr := r.makeRequest(ctx, client)
	if tierErr != nil {
		errorsBucket.AddError(*tierErr)
		return response
	}

	response.Status = schema.StoreResponseStatusStored
	response.RemoteReference = fmt.Sprintf("%d", row.ID)

	return response
}

func (r *rowInsert) makeRequest(ctx context.Context, client *http.Client) (insertedRow, *schema.TierError) {
	url := r.cfg.BaseURL + "/rest/v1/" + r.table
	c := context.WithValue(ctx, schema.RemoteCallNameKey, r.callName)

	httpRequest, _ := http.NewRequestWithContext(c, http.MethodPost, url, bytes.NewBuffer(r.body))
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("apikey", r.cfg.AnonKey)
	httpRequest.Header.Set("Authorization", "Bearer "+r.cfg.AnonKey)
	httpRequest.Header.Set("Prefer", "return=representation")

	rs, tierErr := requesting.RequestErrors(client.Do(httpRequest))
	if tierErr != nil {
		return insertedRow{}, tierErr
	}
	defer rs.Body.Close()

	bodyBytes, _ := io.ReadAll(rs.Body)

	// inserts return the representation as a single element array
	var rows []insertedRow
	if err := json.Unmarshal(bodyBytes, &rows); err != nil {
		e := schema.NewRemoteError(err.Error())
		return insertedRow{}, &e
	}

	if len(rows) == 0 {
		e := schema.NewRemoteError("remote store returned no inserted row")
		return insertedRow{}, &e
	}

	return rows[0], nil
}
