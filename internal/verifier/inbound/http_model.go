package inbound

import "github.com/SparrowtheDon/email-checker/internal/verifier/entity"

type VerifyRequest struct {
	Email string `json:"email"`
}

// VerificationResult is one row of a bulk response and of an export request.
type VerificationResult struct {
	Email     string  `json:"email"`
	Status    string  `json:"status"`
	SubStatus *string `json:"sub_status"`
}

func toHTTPResult(r entity.Result) VerificationResult {
	return VerificationResult{
		Email:     r.Email,
		Status:    r.Status,
		SubStatus: r.SubStatus,
	}
}

func (v VerificationResult) toEntity() entity.Result {
	return entity.Result{
		Email:     v.Email,
		Status:    v.Status,
		SubStatus: v.SubStatus,
	}
}
