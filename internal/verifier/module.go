package verifier

import (
	"context"
	"errors"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgconfig"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkghttp"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgmetric"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgrouter"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkguid"
	"github.com/SparrowtheDon/email-checker/internal/verifier/inbound"
	"github.com/SparrowtheDon/email-checker/internal/verifier/outbound"
	"github.com/SparrowtheDon/email-checker/internal/verifier/store"
	"github.com/SparrowtheDon/email-checker/internal/verifier/usecase"
)

const userAgent = "email-checker/1.0"

type Dependency struct {
	Config  pkgconfig.Config
	Router  *pkgrouter.Router
	JobID   pkguid.NumberID
	Metrics *pkgmetric.Metrics
}

func New(dep Dependency) (func(context.Context) error, error) {
	if dep.Config == nil || dep.Router == nil || dep.JobID == nil {
		return nil, errors.New("verifier: missing dependency")
	}

	baseURL := dep.Config.GetString("upstream.base_url")
	if baseURL == "" {
		baseURL = outbound.DefaultBaseURL
	}

	client := pkghttp.NewClient(pkghttp.Options{
		BaseURL:   baseURL,
		Timeout:   dep.Config.GetDuration("upstream.timeout"),
		UserAgent: userAgent,
	})

	var (
		verifierObs outbound.Observer
		bulkObs     usecase.Observer
	)
	if dep.Metrics != nil {
		verifierObs = dep.Metrics
		bulkObs = dep.Metrics
	}

	zb := outbound.NewZeroBounce(client, outbound.ZeroBounceConfig{
		APIKey:    dep.Config.GetString("upstream.api_key"),
		IPAddress: dep.Config.GetString("upstream.ip_address"),
	}, verifierObs)

	uploads, err := store.NewDiskStore(dep.Config.GetString("modules.verifier.upload.dir"))
	if err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		Verifier:    zb,
		Uploads:     uploads,
		Observer:    bulkObs,
		JobID:       dep.JobID,
		Concurrency: int(dep.Config.GetInt("modules.verifier.bulk.concurrency")),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.Config{
		MaxUploadBytes: dep.Config.GetInt("modules.verifier.upload.max_bytes"),
	})

	return func(context.Context) error {
		client.GetClient().CloseIdleConnections()
		return nil
	}, nil
}
