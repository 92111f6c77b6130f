package http_server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentauction/internal/http/auctionhandler"
	"rentauction/internal/services/auction"
)

type httpServer struct {
	listenPort     uint16
	srv            http.Server
	ln             net.Listener
	auctionService auction.IAuctionService
	ctx            context.Context
}

func NewHttpServer(ctx context.Context, listenPort uint16, auctionService auction.IAuctionService) *httpServer {
	return &httpServer{
		listenPort:     listenPort,
		auctionService: auctionService,
		ctx:            ctx,
	}
}

func (h *httpServer) router() *gin.Engine {
	routerEngine := gin.New()
	routerEngine.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))
	routerEngine.Use(ginzap.RecoveryWithZap(zap.L(), true))

	routerEngine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// REST API
	ah := auctionhandler.New(h.auctionService)
	ah.Register(routerEngine)
	return routerEngine
}

// Listen binds the port so Addr is known before Serve blocks.
func (h *httpServer) Listen() error {
	var err error
	h.ln, err = net.Listen("tcp", fmt.Sprintf(":%d", h.listenPort))
	if err != nil {
		return err
	}
	h.srv = http.Server{
		Handler:           h.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}

func (h *httpServer) Addr() net.Addr { return h.ln.Addr() }

// Serve blocks until Dispose is called. A clean shutdown returns nil.
func (h *httpServer) Serve() error {
	zap.L().Info("http_listen", zap.String("addr", h.ln.Addr().String()))
	if err := h.srv.Serve(h.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *httpServer) Start() error {
	if err := h.Listen(); err != nil {
		return err
	}
	return h.Serve()
}

// Dispose gracefully shuts the HTTP server down.
// It waits up to 10 s for in‑flight requests to finish.
func (h *httpServer) Dispose() error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(h.ctx), 10*time.Second)
	defer cancel()

	if err := h.srv.Shutdown(ctx); err != nil {
		zap.L().Error("http_dispose", zap.Error(err))
		return err
	}
	return nil
}
