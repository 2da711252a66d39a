package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iulianpascalau/weather-station/services/station/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("api")

const (
	statusOK      = "ok"
	statusFaulted = "faulted"
)

type server struct {
	router         *gin.Engine
	httpServer     *http.Server
	snapshots      SnapshotProvider
	station        StationInfo
	metricsHandler http.Handler
	listenAddr     string
	generalHandler func(http.Handler) http.Handler
	wg             sync.WaitGroup
}

// ArgsWebServer defines the web server arguments
type ArgsWebServer struct {
	ListenAddress  string
	Snapshots      SnapshotProvider
	Station        StationInfo
	MetricsHandler http.Handler
	GeneralHandler func(http.Handler) http.Handler
}

// NewServer initializes the Gin engine and mounts all routes
func NewServer(args ArgsWebServer) (*server, error) {
	if check.IfNil(args.Snapshots) {
		return nil, errors.New("nil snapshot provider")
	}
	if check.IfNil(args.Station) {
		return nil, errors.New("nil station info")
	}
	if args.GeneralHandler == nil {
		return nil, errors.New("nil http handler")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())

	s := &server{
		router:         router,
		snapshots:      args.Snapshots,
		station:        args.Station,
		metricsHandler: args.MetricsHandler,
		listenAddr:     args.ListenAddress,
		generalHandler: args.GeneralHandler,
	}

	s.setupRoutes()
	return s, nil
}

func (s *server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/snapshot", s.handleGetSnapshot)
		api.GET("/health", s.handleGetHealth)
		api.GET("/windows", s.handleGetWindows)
	}

	if s.metricsHandler != nil {
		s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
}

// Start listens and serves connections
func (s *server) Start() {
	handler := s.generalHandler(s.router)

	s.httpServer = &http.Server{
		Addr:              s.listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		log.Error("failed to listen", "error", err)
		return
	}
	s.listenAddr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info("starting status HTTP server", "address", s.listenAddr)

		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
		}
	}()
}

// Address returns the actual listen address
func (s *server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server
func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.wg.Wait()

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *server) IsInterfaceNil() bool {
	return s == nil
}

func (s *server) handleGetSnapshot(c *gin.Context) {
	snapshot, ok := s.snapshots.LatestSnapshot()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot available yet"})
		return
	}

	c.JSON(http.StatusOK, common.NewReportPayload(snapshot, ""))
}

func (s *server) handleGetHealth(c *gin.Context) {
	faults := s.station.Faults()

	status := statusOK
	faulted := false
	for _, isFaulted := range faults {
		if isFaulted {
			status = statusFaulted
			faulted = true
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"faulted": faulted,
		"faults":  faults,
	})
}

func (s *server) handleGetWindows(c *gin.Context) {
	windows := s.station.LastWindows()

	out := make(map[string]map[string]float64, len(windows))
	for name, summary := range windows {
		out[name] = summary.ToMap()
	}

	c.JSON(http.StatusOK, gin.H{"windows": out})
}
