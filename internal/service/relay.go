package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"wallet-client/internal/event"
	"wallet-client/internal/service/mq"
	"wallet-client/pkg/logger"
	"wallet-client/pkg/safe_random"
)

// RelayService 把进程内事件转发到 MQ, 供钱包之外的组件消费。
// 进程内订阅者不受影响, 转发失败只记日志不影响主流程。
type RelayService struct {
	bus      event.Bus
	producer mq.Producer
	topic    string
	cancels  []func()
}

type relayEnvelope struct {
	Event     string `json:"event"`
	Timestamp int64  `json:"timestamp"`
	Nonce     string `json:"nonce"`
}

func NewRelayService(bus event.Bus, producer mq.Producer, topic string) *RelayService {
	return &RelayService{
		bus:      bus,
		producer: producer,
		topic:    topic,
	}
}

// Start 开始转发; 目前只有一个事件名, 新事件在这里登记即可
func (s *RelayService) Start(ctx context.Context) {
	logger.Info("[Relay] 启动事件转发服务", zap.String("topic", s.topic))
	s.cancels = append(s.cancels, s.bus.Subscribe(event.ClientChanged, func() {
		s.forward(ctx, event.ClientChanged)
	}))
}

// Stop 取消所有订阅
func (s *RelayService) Stop() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

func (s *RelayService) forward(ctx context.Context, name string) {
	nonce, _ := safe_random.GenerateRandomHexString(8)
	payload, err := json.Marshal(relayEnvelope{
		Event:     name,
		Timestamp: time.Now().UnixMilli(),
		Nonce:     nonce,
	})
	if err != nil {
		logger.Error("[Relay] 序列化事件失败", zap.Error(err))
		return
	}

	if err := s.producer.Publish(ctx, s.topic, name, payload); err != nil {
		logger.Error("[Relay] 事件转发失败", zap.String("event", name), zap.Error(err))
	}
}
