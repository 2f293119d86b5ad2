package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vmap-rag/internal/ai"
	"vmap-rag/internal/cache"
	"vmap-rag/internal/config"
	"vmap-rag/internal/csvsource"
	"vmap-rag/internal/model"
	mysqlClient "vmap-rag/internal/platform/mysql"
	rabbitmqClient "vmap-rag/internal/platform/rabbitmq"
	redisClient "vmap-rag/internal/platform/redis"
	"vmap-rag/internal/rag"
	"vmap-rag/internal/repository"
	"vmap-rag/internal/session"
	"vmap-rag/internal/vectorstore"
	"vmap-rag/internal/vectorstore/memory"
	"vmap-rag/internal/vectorstore/mysqldb"
	"vmap-rag/internal/worker"
)

// App holds every wired dependency for the server's lifetime.
type App struct {
	Config         *config.Config
	MySQL          *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	QueryLogWorker *worker.QueryLogWorker

	Sessions    *session.Store
	TokenSigner *session.TokenSigner
	AnswerCache *cache.AnswerCache
	Publisher   *rabbitmqClient.QueryLogPublisher

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.ChunkRecord{}, &model.QueryLog{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	queryLogRepo := repository.NewQueryLogRepository(mysqlDB)
	queryLogWorker := worker.NewQueryLogWorker(mqConn, queryLogRepo, cfg.RabbitMQ.QueryLogQueue)
	if err := queryLogWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start query log worker failed: %w", err)
	}

	llmClient := ai.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey)
	embedder := vectorstore.NewClientEmbedder(llmClient, cfg.LLM.EmbeddingModel, cfg.LLM.EmbedBatchSize)
	generator := ai.NewGenerator(llmClient, cfg.LLM.Model)

	index, err := newVectorIndex(cfg, mysqlDB, embedder)
	if err != nil {
		return nil, err
	}

	source := csvsource.New()
	splitter := rag.NewSplitter(
		rag.WithChunkSize(cfg.RAG.ChunkSize),
		rag.WithChunkOverlap(cfg.RAG.ChunkOverlap),
	)
	sessions := session.NewStore(func() *rag.Session {
		return rag.NewSession(source, index, generator,
			rag.WithTopK(cfg.RAG.TopK),
			rag.WithSplitter(splitter),
		)
	})

	return &App{
		Config:         cfg,
		MySQL:          mysqlDB,
		Redis:          redisCli,
		MQConn:         mqConn,
		QueryLogWorker: queryLogWorker,
		Sessions:       sessions,
		TokenSigner: session.NewTokenSigner(
			cfg.Session.TokenSecret,
			time.Duration(cfg.Session.TokenTTLMinute)*time.Minute,
		),
		AnswerCache: cache.NewAnswerCache(
			redisCli,
			time.Duration(cfg.Redis.AnswerTTLSeconds)*time.Second,
		),
		Publisher: rabbitmqClient.NewQueryLogPublisher(mqConn, cfg.RabbitMQ.QueryLogQueue),
		StartedAt: time.Now(),
	}, nil
}

func newVectorIndex(cfg *config.Config, db *gorm.DB, embedder vectorstore.Embedder) (rag.VectorIndex, error) {
	switch cfg.VectorStore.Driver {
	case "", "memory":
		return memory.NewStore(embedder), nil
	case "mysql":
		return mysqldb.NewStore(repository.NewChunkRepository(db), embedder), nil
	default:
		return nil, fmt.Errorf("unknown vector store driver %q", cfg.VectorStore.Driver)
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.QueryLogWorker != nil {
		a.QueryLogWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
