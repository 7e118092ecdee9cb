package server

import (
	"Social/config"
	"Social/dao/cache"
	"Social/middleware"
	"Social/pkg/log"
	"Social/pkg/mq"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider struct {
	Config    *config.Config
	Engine    *gin.Engine
	Evictor   *cache.Evictor
	Publisher mq.Publisher
}

func serverId(port int) string {
	ip, err := getLocalIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	// 格式: 192.168.1.10:8080
	return fmt.Sprintf("%s:%d", ip, port)
}

func getLocalIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		// 排除回环地址
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}
	return "", errors.New("no ip address found")
}

func NewGinEngine(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.Use(middleware.GinZap(), middleware.Recovery(), middleware.PrometheusMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.User.RegisterRouter(r)
	h.Post.RegisterRouter(r)
	h.Comment.RegisterRouter(r)
	return r
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Content-Length, X-Requested-With, X-Request-Id")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		// OPTIONS 预检直接返回 204
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func Run(ctx *cli.Context, app *AppProvider) error {
	if !app.Config.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	// SIGTERM / SIGQUIT / SIGINT 触发优雅退出
	sigCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
	defer stop()

	sid := serverId(app.Config.Server.Http)
	log.L.Info("server starting", zap.String("serverId", sid),
		zap.Int("port", app.Config.Server.Http),
		zap.String("env", app.Config.App.Env),
		zap.String("cache", app.Config.Cache.Backend),
		zap.String("mq", app.Config.MQ.Driver),
	)

	err := run(sigCtx, sid, app)
	closePublisher(app.Publisher)
	log.L.Info("server stopped", zap.String("serverId", sid))
	return err
}

// run 阻塞直到 ctx 结束或任一任务出错
func run(ctx context.Context, sid string, app *AppProvider) error {
	serv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Config.Server.Http),
		Handler:           app.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, groupCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// 定时清空列表缓存
	eg.Go(func() error {
		return app.Evictor.Run(groupCtx)
	})

	eg.Go(func() error {
		<-groupCtx.Done()
		log.L.Info("server stopping", zap.String("serverId", sid))
		return shutdown(serv)
	})

	if err := eg.Wait(); err != nil {
		log.L.Error("server exited with error", zap.String("serverId", sid), zap.Error(err))
		return err
	}
	return nil
}

// shutdown 最多等待 3s 处理完存量请求
func shutdown(serv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := serv.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func closePublisher(p mq.Publisher) {
	if p == nil {
		return
	}
	if err := p.Close(); err != nil {
		log.L.Warn("close mq publisher", zap.Error(err))
	}
}
