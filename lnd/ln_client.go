package lnd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ziflex/lecho/v3"
)

func InitLNClient(c *Config, logger *lecho.Logger, ctx context.Context) (result LightningClientWrapper, err error) {
	switch c.LNClientType {
	case CLN_CLIENT_TYPE:
		return NewCLNClient(CLNClientOptions{
			RPCPath:     c.CLNRPCPath,
			SparkUrl:    c.CLNSparkURL,
			SparkToken:  c.CLNSparkToken,
			CallTimeout: time.Duration(c.CLNCallTimeout) * time.Second,
		})
	case LND_CLIENT_TYPE:
		return InitSingleLNDClient(c, ctx)
	case LND_CLUSTER_CLIENT_TYPE:
		return InitLNDCluster(c, logger, ctx)
	default:
		return nil, fmt.Errorf("Did not recognize LN client type %s", c.LNClientType)
	}
}

func InitSingleLNDClient(c *Config, ctx context.Context) (result LightningClientWrapper, err error) {
	client, err := NewLNDclient(LNDoptions{
		Address:      c.LNDAddress,
		MacaroonFile: c.LNDMacaroonFile,
		MacaroonHex:  c.LNDMacaroonHex,
		CertFile:     c.LNDCertFile,
		CertHex:      c.LNDCertHex,
	}, ctx)
	if err != nil {
		return nil, err
	}
	getInfo, err := client.GetInfo(ctx)
	if err != nil {
		return nil, err
	}
	client.IdentityPubkey = getInfo.ID
	return client, nil
}

func InitLNDCluster(c *Config, logger *lecho.Logger, ctx context.Context) (result LightningClientWrapper, err error) {
	nodes := []LightningClientWrapper{}
	//interpret lnd address, macaroon file & cert file as comma seperated values
	addresses := strings.Split(c.LNDAddress, ",")
	macaroons := strings.Split(c.LNDMacaroonFile, ",")
	certs := strings.Split(c.LNDCertFile, ",")
	if len(addresses) != len(macaroons) || len(addresses) != len(certs) || len(certs) != len(macaroons) {
		return nil, fmt.Errorf("Error parsing LND cluster config: addresses, macaroons or certs array length mismatch")
	}
	for i := 0; i < len(addresses); i++ {
		n, err := NewLNDclient(LNDoptions{
			Address:      addresses[i],
			MacaroonFile: macaroons[i],
			CertFile:     certs[i],
		}, ctx)
		if err != nil {
			return nil, err
		}
		getInfo, err := n.GetInfo(ctx)
		if err != nil {
			return nil, err
		}
		n.IdentityPubkey = getInfo.ID
		nodes = append(nodes, n)
	}
	logger.Infof("Initialized LND cluster with %d nodes", len(nodes))
	cluster, err := NewLNDCluster(nodes, logger, c.LNDClusterLivenessPeriod)
	if err != nil {
		return nil, err
	}
	//start liveness check
	go cluster.StartLivenessLoop(ctx)
	return cluster, nil
}
