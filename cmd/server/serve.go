package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/rl1809/fitgear/internal/adapter/events"
	"github.com/rl1809/fitgear/internal/adapter/handler"
	"github.com/rl1809/fitgear/internal/adapter/handler/cartrpc"
	"github.com/rl1809/fitgear/internal/adapter/storage"
	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/core/service"
	"github.com/rl1809/fitgear/internal/port"
)

type cartBackend interface {
	port.CartStorage
	port.IdempotencyStore
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// MySQL backs the catalog and orders when configured
	var (
		db       *sql.DB
		orderDB  port.DatabaseRepository
		products = domain.DefaultProducts()
	)
	if cfg.MySQLDSN != "" {
		var err error
		db, err = openMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		mysqlAdapter := storage.NewMySQLAdapter(db)
		if err := mysqlAdapter.Migrate(ctx); err != nil {
			return err
		}
		listed, err := mysqlAdapter.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		if len(listed) > 0 {
			products = listed
		} else {
			log.Warn("products table is empty, serving built-in catalog")
		}
		orderDB = mysqlAdapter
	}

	catalog, err := domain.NewCatalog(products)
	if err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	log.Info("catalog loaded", zap.Int("products", catalog.Len()))

	// Redis backs carts and checkout idempotency when configured
	memory := storage.NewMemoryAdapter()
	var backend cartBackend = memory
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 100,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect redis: %w", err)
		}
		log.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
		backend = storage.NewRedisAdapter(rdb, cfg.CartTTL)
	} else {
		log.Warn("REDIS_ADDR not set, carts are kept in memory")
	}
	if orderDB == nil {
		log.Warn("MYSQL_DSN not set, orders are kept in memory")
		orderDB = memory
	}

	publisher, closePublisher, err := newPublisher()
	if err != nil {
		return err
	}
	defer closePublisher()

	carts := service.NewCartService(backend, catalog, log, cfg.CartKeyPrefix)
	orders := service.NewOrderService(carts, backend, cfg.QueueSize)
	worker := service.NewOrderWorker(orderDB, carts, publisher, log)

	// Start worker pool
	var workers sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		workers.Add(1)
		go func(id int) {
			defer workers.Done()
			worker.Run(id, orders.GetOrderQueue())
		}(i)
	}
	log.Info("started workers", zap.Int("count", cfg.Workers))

	httpHandler, err := handler.NewHTTPHandler(carts, orders, cfg.FeaturedLimit, log)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           httpHandler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	cartrpc.RegisterCartServiceServer(grpcServer, handler.NewGRPCHandler(carts))

	lis, err := net.Listen("tcp", cfg.GRPCAddr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP shutdown failed", zap.Error(err))
		}
		log.Info("HTTP server stopped")

		grpcServer.GracefulStop()
		log.Info("gRPC server stopped")
		return nil
	})

	serveErr := g.Wait()

	// Close waits for checkouts still sending after a timed-out shutdown
	orders.Close()
	workers.Wait()
	log.Info("workers stopped")

	return serveErr
}

func openMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mysql: %w", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}
	log.Info("connected to mysql")
	return db, nil
}

func newPublisher() (port.EventPublisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NewLoggingPublisher(log), func() {}, nil
	}
	kp, err := events.NewKafkaPublisher(cfg.KafkaBrokers, map[string]string{
		service.EventOrderPlaced: cfg.KafkaTopic,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info("publishing events to kafka", zap.Strings("brokers", cfg.KafkaBrokers))
	return kp, func() {
		if err := kp.Close(); err != nil {
			log.Warn("kafka writer close failed", zap.Error(err))
		}
	}, nil
}

