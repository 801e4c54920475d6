package lnd

import (
	"github.com/kelseyhightower/envconfig"
)

const (
	CLN_CLIENT_TYPE         = "cln"
	LND_CLIENT_TYPE         = "lnd"
	LND_CLUSTER_CLIENT_TYPE = "lnd_cluster"
)

type Config struct {
	LNClientType             string `envconfig:"LN_CLIENT_TYPE" default:"cln"` //cln, lnd, lnd_cluster
	CLNRPCPath               string `envconfig:"CLN_RPC_PATH"`
	CLNSparkURL              string `envconfig:"CLN_SPARK_URL"`
	CLNSparkToken            string `envconfig:"CLN_SPARK_TOKEN"`
	CLNCallTimeout           int    `envconfig:"CLN_CALL_TIMEOUT" default:"30"` // in seconds
	LNDAddress               string `envconfig:"LND_ADDRESS"`
	LNDMacaroonFile          string `envconfig:"LND_MACAROON_FILE"`
	LNDCertFile              string `envconfig:"LND_CERT_FILE"`
	LNDMacaroonHex           string `envconfig:"LND_MACAROON_HEX"`
	LNDCertHex               string `envconfig:"LND_CERT_HEX"`
	LNDClusterLivenessPeriod int    `envconfig:"LND_CLUSTER_LIVENESS_PERIOD" default:"10"`
}

func LoadConfig() (c *Config, err error) {
	c = &Config{}
	err = envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
