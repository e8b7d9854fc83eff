package entity

import "encoding/json"

// Status and sub-status values this service produces itself. Everything else
// is passed through from the verification API untouched.
const (
	StatusError           = "error"
	SubStatusNetworkError = "network_error"
)

// Result is the outcome of verifying one email address.
type Result struct {
	Email     string  `json:"email"`
	Status    string  `json:"status"`
	SubStatus *string `json:"sub_status"`

	// Upstream is the raw JSON body returned by the verification API.
	Upstream json.RawMessage `json:"-"`
}

// ErrorResult marks a row whose verification call failed.
func ErrorResult(email string) Result {
	sub := SubStatusNetworkError
	return Result{
		Email:     email,
		Status:    StatusError,
		SubStatus: &sub,
	}
}

// Failed reports whether r is the error marker.
func (r Result) Failed() bool {
	return r.Status == StatusError && r.SubStatus != nil && *r.SubStatus == SubStatusNetworkError
}

// SubStatusOrEmpty returns the sub-status or "" when the API sent none.
func (r Result) SubStatusOrEmpty() string {
	if r.SubStatus == nil {
		return ""
	}
	return *r.SubStatus
}
