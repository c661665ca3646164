package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeLeaderboardRecompute = "leaderboard:recompute"

	QueueDefault = "default"

	maxRetry    = 5
	taskTimeout = 2 * time.Minute
)

type TaskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Recomputer interface {
	Recompute(ctx context.Context, month, year int) error
}

type RecomputePayload struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Client publishes background tasks. One recompute per month may wait in the
// queue at a time; later requests for the same month fold into it.
type Client struct {
	client TaskClient
}

func NewClient(client TaskClient) *Client {
	return &Client{client: client}
}

func RedisOpt(addr, password string) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
	}
}

func RecomputeTaskID(month, year int) string {
	return fmt.Sprintf("leaderboard-%04d-%02d", year, month)
}

func (c *Client) EnqueueLeaderboardRecompute(ctx context.Context, month, year int) error {
	payload, err := json.Marshal(RecomputePayload{Month: month, Year: year})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeLeaderboardRecompute, payload)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.TaskID(RecomputeTaskID(month, year)),
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(taskTimeout),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		zap.L().Debug("leaderboard recompute already queued", zap.Int("month", month), zap.Int("year", year))
		return nil
	}
	if err != nil {
		zap.L().Error("failed to enqueue leaderboard recompute", zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		return err
	}
	zap.L().Info("leaderboard recompute enqueued", zap.String("task_id", info.ID), zap.String("queue", info.Queue))
	return nil
}

type Handler struct {
	leaderboard Recomputer
}

func NewHandler(leaderboard Recomputer) *Handler {
	return &Handler{leaderboard: leaderboard}
}

func (h *Handler) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeLeaderboardRecompute, h.HandleLeaderboardRecompute)
	return mux
}

func (h *Handler) HandleLeaderboardRecompute(ctx context.Context, task *asynq.Task) error {
	var p RecomputePayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("decode recompute payload: %v: %w", err, asynq.SkipRetry)
	}
	if err := h.leaderboard.Recompute(ctx, p.Month, p.Year); err != nil {
		zap.L().Error("leaderboard recompute failed", zap.Int("month", p.Month), zap.Int("year", p.Year), zap.Error(err))
		return err
	}
	return nil
}

func NewServer(opt asynq.RedisClientOpt, concurrency int) *asynq.Server {
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueueDefault: 1,
		},
		Logger: zapLogger{},
	})
}

type zapLogger struct{}

func (zapLogger) Debug(args ...interface{}) { zap.S().Debug(args...) }
func (zapLogger) Info(args ...interface{})  { zap.S().Info(args...) }
func (zapLogger) Warn(args ...interface{})  { zap.S().Warn(args...) }
func (zapLogger) Error(args ...interface{}) { zap.S().Error(args...) }
func (zapLogger) Fatal(args ...interface{}) { zap.S().Fatal(args...) }
