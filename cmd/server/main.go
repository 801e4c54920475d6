package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/getAlby/lnnetwork.go/docs"
	"github.com/getAlby/lnnetwork.go/lib/logging"
	"github.com/getAlby/lnnetwork.go/lib/service"
	"github.com/getAlby/lnnetwork.go/lib/tokens"
	"github.com/getAlby/lnnetwork.go/lib/transport"
	"github.com/getAlby/lnnetwork.go/lnd"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// @title        lnnetwork.go
// @version      0.1.0
// @description  Lightning Network graph and fee-rate queries over HTTP.

// @contact.name   Alby
// @contact.url    https://getalby.com
// @contact.email  hello@getalby.com

// @license.name  GNU GPLv3
// @license.url   https://www.gnu.org/licenses/gpl-3.0.en.html

// @BasePath  /

// @securitydefinitions.apikey  AccessToken
// @in                          header
// @name                        Authorization
// @schemes                     https http
func main() {

	c := &service.Config{}

	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configrued log file
	logger := logging.Logger(c.LogFilePath)

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	backGroundCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Init new LN client
	lnCfg, err := lnd.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading LN config: %v", err)
	}
	lnClient, err := lnd.InitLNClient(lnCfg, logger, backGroundCtx)
	if err != nil {
		logger.Fatalf("Error initializing the %s connection: %v", lnCfg.LNClientType, err)
	}

	// every call to the node goes through the supervisor, it turns connection
	// faults into request errors instead of taking the process down
	supervisor := service.NewSupervisor(lnClient, logger, time.Duration(c.LivenessCheckPeriod)*time.Second)
	info, err := supervisor.GetInfo(backGroundCtx)
	if err != nil {
		logger.Errorf("Could not reach %s node at startup: %v", lnCfg.LNClientType, err)
	} else {
		logger.Infof("Connected to %s: %s (%s)", lnCfg.LNClientType, info.ID, info.Network)
	}

	svc := &service.NetworkService{
		Config:   c,
		LnClient: supervisor,
		Logger:   logger,
	}

	//init echo server
	e := transport.InitEcho(c, logger)
	//if Datadog is configured, add datadog middleware
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("lnnetwork.go")))
	}

	//Start Prometheus server if necessary
	var echoPrometheus *echo.Echo
	if svc.Config.EnablePrometheus {
		echoPrometheus = transport.StartPrometheusEcho(logger, svc, e)
	}

	logMw := transport.CreateLoggingMiddleware(logger)
	cacheMw, err := transport.CreateCacheMiddleware(time.Duration(c.CacheTTL) * time.Second)
	if err != nil {
		logger.Fatalf("Error creating response cache: %v", err)
	}
	secured := e.Group("", tokens.AccessTokenMiddleware(c.AccessToken), logMw)
	transport.RegisterNetworkEndpoints(svc, e, secured, cacheMw)

	//Swagger API spec
	docs.SwaggerInfo.Host = c.Host
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	var backgroundWg sync.WaitGroup
	backgroundWg.Add(1)
	go func() {
		supervisor.StartLivenessLoop(backGroundCtx)
		svc.Logger.Info("Liveness routine done")
		backgroundWg.Done()
	}()

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	if echoPrometheus != nil {
		if err := echoPrometheus.Shutdown(ctx); err != nil {
			e.Logger.Fatal(err)
		}
	}
	//Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	svc.Logger.Info("lnnetwork.go exiting gracefully. Goodbye.")
}
