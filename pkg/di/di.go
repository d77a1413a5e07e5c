package di

import (
	"context"
	"log"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"waffle-service/configs"
	"waffle-service/internal/comment"
	"waffle-service/internal/notification"
	"waffle-service/internal/ratelimit"
	"waffle-service/internal/reply"
	"waffle-service/internal/storage/s3"
	"waffle-service/internal/user"
	"waffle-service/internal/waffle"
	"waffle-service/pkg/db"
	"waffle-service/pkg/kafka"
	"waffle-service/pkg/redis"
)

type Container struct {
	DB      *gorm.DB
	Redis   *goredis.Client
	Storage *s3.Storage
	Events  kafka.Writer
	Limiter *ratelimit.Limiter

	UserService         user.Service
	WaffleService       waffle.Service
	CommentService      comment.Service
	ReplyService        reply.Service
	NotificationService notification.Service

	UserHandler         *user.Handler
	WaffleHandler       *waffle.Handler
	CommentHandler      *comment.Handler
	ReplyHandler        *reply.Handler
	NotificationHandler *notification.Handler
}

func BuildContainer(cfg *configs.Config) *Container {
	dbConn := db.NewDb(cfg)
	rdb := redis.NewClient(cfg.RedisHost, cfg.RedisPort)

	store, err := s3.New(s3.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Bucket:    cfg.S3BucketName,
	})
	if err != nil {
		log.Fatalf("s3: %v", err)
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("s3 ensure bucket: %v", err)
	}

	events := kafka.NewWriter(cfg.KafkaBrokerURL, cfg.KafkaTopic)

	userRepo := user.NewRepository(dbConn.DB)
	userService := user.NewService(userRepo)

	waffleRepo := waffle.NewRepository(dbConn.DB)
	waffleService := waffle.NewService(waffleRepo, store, events, userService)

	commentRepo := comment.NewRepository(dbConn.DB)
	commentService := comment.NewService(commentRepo, userService)

	replyRepo := reply.NewRepository(dbConn.DB)
	replyService := reply.NewService(replyRepo, store, userService)

	notifRepo := notification.NewRedisRepository(rdb)
	notifService := notification.NewService(notifRepo, userService)

	return &Container{
		DB:      dbConn.DB,
		Redis:   rdb,
		Storage: store,
		Events:  events,
		Limiter: ratelimit.New(rdb),

		UserService:         userService,
		WaffleService:       waffleService,
		CommentService:      commentService,
		ReplyService:        replyService,
		NotificationService: notifService,

		UserHandler:         user.NewHandler(userService, store),
		WaffleHandler:       waffle.NewHandler(waffleService, store),
		CommentHandler:      comment.NewHandler(commentService),
		ReplyHandler:        reply.NewHandler(replyService),
		NotificationHandler: notification.NewHandler(notifService),
	}
}
