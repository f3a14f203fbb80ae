package daybooksdk

import (
	"fmt"
	"runtime"
	"time"

	"github.com/daybook-hq/daybook/internal/version"
	"github.com/denisbrodbeck/machineid"
	"github.com/imroc/req/v3"
)

const (
	HeaderDaybookVersion  = "X-Daybook-Version"
	HeaderDaybookUser     = "X-Daybook-User"
	HeaderDaybookDeviceId = "X-Daybook-Device-Id"
)

var DaybookUserAgent = fmt.Sprintf("Daybook/%s (%s; %s; %s)", version.Version, version.Revision, runtime.GOOS, runtime.GOARCH)

// HWID identifies this machine in API calls; stable across runs.
var HWID = func() string {
	id, err := machineid.ProtectedID("daybook")
	if err != nil {
		return "unknown"
	}
	return id
}()

// newHTTPClient builds a req client with retry and common headers.
// 4xx responses are not retried; connection failures are.
func newHTTPClient() *req.Client {
	return req.C().
		SetCommonRetryCount(3).
		SetCommonRetryFixedInterval(1 * time.Second).
		SetCommonRetryCondition(func(resp *req.Response, err error) bool {
			return err != nil || resp.GetStatusCode() >= 500
		}).
		SetUserAgent(DaybookUserAgent).
		SetCommonHeader(HeaderDaybookVersion, version.Version).
		SetCommonHeader(HeaderDaybookDeviceId, HWID).
		SetCommonErrorResult(&APIError{}).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal)
}
