package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/SergeyBogomolovv/storefront-service/docs"
	"github.com/SergeyBogomolovv/storefront-service/internal/app"
	"github.com/SergeyBogomolovv/storefront-service/internal/auth"
	"github.com/SergeyBogomolovv/storefront-service/internal/config"
	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/handler"
	"github.com/SergeyBogomolovv/storefront-service/internal/notify"
	"github.com/SergeyBogomolovv/storefront-service/internal/outbox"
	"github.com/SergeyBogomolovv/storefront-service/internal/payment"
	"github.com/SergeyBogomolovv/storefront-service/internal/postgres"
	"github.com/SergeyBogomolovv/storefront-service/internal/pricing"
	"github.com/SergeyBogomolovv/storefront-service/internal/repo"
	"github.com/SergeyBogomolovv/storefront-service/internal/service"
	"github.com/SergeyBogomolovv/storefront-service/pkg/cache"
	"github.com/SergeyBogomolovv/storefront-service/pkg/trm"

	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
)

// повторные доставки одного события приходят в пределах этого окна
const handledEventsTTL = 24 * time.Hour

// @title           Storefront Order Service API
// @version         1.0
// @description     Оформление заказов, платежи и администрирование магазина
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(ctx, conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	policy, err := pricing.PolicyByName(conf.Pricing.ShippingPolicy)
	panicIfErr("invalid pricing config", err)
	calc := pricing.NewCalculator(policy)

	txManager := trm.NewManager(db)
	outboxRepo := repo.NewOutboxRepo(db)
	repos := service.Repositories{
		Products: repo.NewProductRepo(db),
		Orders:   repo.NewOrderRepo(db),
		Payments: repo.NewPaymentRepo(db),
		Outbox:   outboxRepo,
	}
	orderCache := cache.NewLRUCache[entities.Order](conf.Cache.Capacity, conf.Cache.TTL)
	gateway := payment.NewStripeGateway(conf.Stripe.SecretKey, conf.Stripe.WebhookSecret)

	orderService := service.NewOrderService(logger, txManager, repos, orderCache, calc, gateway.Provider(), conf.Stripe.Currency)
	paymentService := service.NewPaymentService(logger, txManager, repos, orderCache, gateway, calc, conf.Stripe.Currency)
	productService := service.NewProductService(logger, repos.Products)

	mailer, err := notify.NewSMTPMailer(conf.SMTP)
	panicIfErr("failed to create mailer", err)
	notifier := notify.NewNotifier(logger, mailer)

	handledEvents := cache.NewLRUCache[struct{}](conf.Cache.Capacity, handledEventsTTL)
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, notifier, handledEvents)

	writer := &kafka.Writer{
		Addr:         kafka.TCP(conf.Kafka.Brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: conf.Kafka.BatchTimeout,
	}
	defer writer.Close()
	relay := outbox.NewRelay(logger, txManager, outboxRepo, writer, conf.Outbox)

	handler.RegisterMetrics()

	app := app.New(logger, conf, auth.NewVerifier(conf.Auth.JWTSecret))

	app.SetHTTPHandlers(
		handler.NewOrderHandler(logger, orderService, conf.Debug()),
		handler.NewPaymentHandler(logger, paymentService, conf.Debug()),
		handler.NewProductHandler(logger, productService, conf.Debug()),
	)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(
		orderCache,
		handledEvents,
		relay,
		cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity},
	)

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
