package service

import (
	"github.com/getAlby/lnnetwork.go/lnd"
	"github.com/ziflex/lecho/v3"
)

type NetworkService struct {
	Config   *Config
	LnClient lnd.LightningClientWrapper
	Logger   *lecho.Logger
}

// HealthReporter is implemented by clients that track the node connection,
// like the Supervisor.
type HealthReporter interface {
	Healthy() bool
}

func (svc *NetworkService) NodeHealthy() bool {
	if reporter, ok := svc.LnClient.(HealthReporter); ok {
		return reporter.Healthy()
	}
	return true
}
