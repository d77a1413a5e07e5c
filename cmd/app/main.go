package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"waffle-service/configs"
	"waffle-service/internal/migrate"
	"waffle-service/internal/shared/httpx"
	"waffle-service/pkg/di"
	"waffle-service/pkg/kafka"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	svcName := os.Getenv("OTEL_SERVICE_NAME")
	if svcName == "" {
		svcName = "waffle-service"
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(svcName),
		attribute.String("deployment.environment", "local"),
	))
	tp := trace.NewTracerProvider(trace.WithBatcher(exp), trace.WithResource(res))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func newRouter(c *di.Container) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	public := func(pattern, span string, fn httpx.HandlerFunc) {
		mux.Handle(pattern, otelhttp.NewHandler(httpx.Wrap(fn), span))
	}
	protected := func(pattern, span string, fn httpx.HandlerFunc) {
		mux.Handle(pattern, httpx.AuthMiddleware(otelhttp.NewHandler(httpx.Wrap(fn), span)))
	}
	limited := func(pattern, span string, limit int64, window time.Duration, fn httpx.HandlerFunc) {
		h := c.Limiter.LimitHTTP(limit, window, otelhttp.NewHandler(httpx.Wrap(fn), span))
		mux.Handle(pattern, httpx.AuthMiddleware(h))
	}

	public("POST /auth/register", "auth.register", c.UserHandler.Register)
	public("POST /auth/login", "auth.login", c.UserHandler.Login)
	public("GET /waffles/public", "waffles.public", c.WaffleHandler.PublicFeed)

	limited("POST /waffles", "waffles.upload", 10, time.Hour, c.WaffleHandler.Upload)
	protected("GET /waffles/mine", "waffles.mine", c.WaffleHandler.Mine)
	protected("GET /waffles/friends", "waffles.friends", c.WaffleHandler.FriendsFeed)
	protected("GET /waffles/posted", "waffles.posted", c.WaffleHandler.HasPosted)
	protected("GET /media/{key...}", "media.get", c.WaffleHandler.Media)

	limited("POST /waffles/{id}/comments", "comments.create", 60, time.Hour, c.CommentHandler.Create)
	protected("GET /waffles/{id}/comments", "comments.list", c.CommentHandler.List)

	limited("POST /replies", "replies.send", 30, time.Hour, c.ReplyHandler.Send)
	protected("GET /replies", "replies.inbox", c.ReplyHandler.Inbox)

	protected("GET /users/{id}", "users.get", c.UserHandler.Get)
	protected("PATCH /users/me", "users.update", c.UserHandler.UpdateMe)
	protected("POST /users/me/friends", "users.add_friend", c.UserHandler.AddFriend)
	protected("POST /users/me/avatar", "users.avatar", c.UserHandler.UploadAvatar)
	protected("POST /users/lookup", "users.lookup", c.UserHandler.Lookup)

	protected("GET /notifications", "notifications.list", c.NotificationHandler.List)

	return mux
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()
	container := di.BuildContainer(cfg)
	defer func() { _ = container.Events.Close() }()

	if err := migrate.AutoMigrateAll(container.DB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	consumer := kafka.NewConsumer(cfg.KafkaBrokerURL, cfg.KafkaGroupID, cfg.KafkaTopic,
		container.NotificationService.HandleWafflePosted)
	go func() {
		if err := consumer.Run(ctx); err != nil {
			log.Printf("notification consumer: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(container),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		sc, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(sc)
	}()

	log.Printf("waffle-service listening on %s", cfg.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
