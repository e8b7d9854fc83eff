package usecase

import "github.com/SparrowtheDon/email-checker/internal/verifier/entity"

type BulkResult struct {
	Job     entity.Job
	Results []entity.Result
}

type ExportResult struct {
	FileName string
	Data     []byte
}
