package schema

import (
	"sync"
	"time"

	"gitlab.com/velorent/booking-widget/internal/tools/converting"
)

type Key string

const (
	RemoteCallNameKey Key = "remoteCallName"
)

type RemoteCallName string

const (
	DailyInsertCall  RemoteCallName = "daily_insert"
	WeeklyInsertCall RemoteCallName = "weekly_insert"
	ListCall         RemoteCallName = "list"
	PingCall         RemoteCallName = "ping"
	RelayCall        RemoteCallName = "relay"
)

// RemoteCall captures the diagnostic trace of one outgoing request. Every
// remote failure keeps at least this trail, nothing is dropped silently.
type RemoteCall struct {
	Name         RemoteCallName `json:"name"`
	Method       string         `json:"method,omitempty"`
	Url          string         `json:"url,omitempty"`
	StatusCode   int            `json:"statusCode,omitempty"`
	RequestBody  string         `json:"requestBody,omitempty"`
	ResponseBody string         `json:"responseBody,omitempty"`
	Duration     *int           `json:"duration,omitempty"`
	StartedAt    *time.Time     `json:"startedAt,omitempty"`
}

type RemoteCalls []RemoteCall

type remoteCallsBucket struct {
	remoteCalls RemoteCalls
	sync.Mutex
}

func NewRemoteCallsBucket() remoteCallsBucket {
	return remoteCallsBucket{
		remoteCalls: []RemoteCall{},
	}
}

func (r *remoteCallsBucket) RemoteCalls() *RemoteCalls {
	return &r.remoteCalls
}

func (r *remoteCallsBucket) AddCalls(calls RemoteCalls) {
	r.Lock()
	r.remoteCalls = append(r.remoteCalls, calls...)
	r.Unlock()
}

func (r *remoteCallsBucket) FinishedCall(
	name RemoteCallName,
	startTime time.Time,
	statusCode int,
	method string,
	url string,
	requestBody string,
	responseBody string,
) {
	call := RemoteCall{
		Name:         name,
		Method:       method,
		Url:          url,
		StatusCode:   statusCode,
		RequestBody:  requestBody,
		ResponseBody: responseBody,
	}

	call.Duration = converting.PointerToValue(int(time.Since(startTime).Milliseconds()))
	call.StartedAt = converting.PointerToValue(startTime)

	r.Lock()
	r.remoteCalls = append(r.remoteCalls, call)
	r.Unlock()
}
