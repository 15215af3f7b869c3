package requesting

import (
	"fmt"
	"net/http"
	"os"

	"gitlab.com/velorent/booking-widget/internal/schema"
)

func isValidResponse(code int) bool {
	return code >= 200 && code <= 299
}

// RequestErrors folds a transport result into the tier error taxonomy:
// timeouts, connection failures and non-2xx statuses each keep their own code.
func RequestErrors(response *http.Response, err error) (*http.Response, *schema.TierError) {
	if err != nil {
		if os.IsTimeout(err) {
			e := schema.NewTimeoutError(err.Error())
			return nil, &e
		}

		e := schema.NewConnectionError(err.Error())
		return nil, &e
	}

	if !isValidResponse(response.StatusCode) {
		e := schema.NewRemoteError(fmt.Sprintf("remote store returned status code %d", response.StatusCode))
		return nil, &e
	}

	return response, nil
}
