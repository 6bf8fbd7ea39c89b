package healthcheck

import (
	"github.com/x-market/goapi/base/ctx"
)

// HealthCheckRepo probes the backing datastores
type HealthCheckRepo interface {
	PingDB(c ctx.Ctx) error
}

// HealthCheckUsecase reports whether the service is able to serve
type HealthCheckUsecase interface {
	Check(c ctx.Ctx) error
}
