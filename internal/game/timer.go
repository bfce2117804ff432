package game

import (
	"time"

	"github.com/palemoky/letter-rush/internal/protocol"
)

// StartTimer 启动本会话的倒计时，每秒递增一次并广播
// 新的倒计时总是取代旧的：代数递增后，旧协程的在途 tick 会自行放弃
func (s *Session) StartTimer() {
	s.mu.Lock()
	s.timerGen++
	gen := s.timerGen
	s.timerActive = true
	s.CurrentTimerValue = 0
	interval := s.tickInterval
	s.mu.Unlock()

	go s.runTimer(gen, interval)
}

func (s *Session) runTimer(gen uint64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		if s.timerGen != gen {
			// 已被 Stop 或新一轮取代
			s.mu.Unlock()
			return
		}

		s.CurrentTimerValue++
		value := s.CurrentTimerValue

		if value == timerExpiryValue {
			// 到点自停：归零、广播终止 tick
			s.CurrentTimerValue = 0
			s.timerActive = false
			s.timerGen++
			clients := s.clientsLocked()
			s.mu.Unlock()

			sendTimerValue(clients, 0)
			return
		}

		clients := s.clientsLocked()
		s.mu.Unlock()

		sendTimerValue(clients, value)
	}
}

// StopTimer 提前结束倒计时
// 先广播 60 再广播 0，让客户端感知本轮被截断；无活动倒计时时为无操作
func (s *Session) StopTimer() {
	s.mu.Lock()
	if !s.timerActive {
		s.mu.Unlock()
		return
	}

	s.timerGen++
	s.timerActive = false
	s.CurrentTimerValue = 0
	clients := s.clientsLocked()
	s.mu.Unlock()

	sendTimerValue(clients, timerCutValue)
	sendTimerValue(clients, 0)
}

// cancelTimer 静默取消倒计时，用于会话解散和对局结束
func (s *Session) cancelTimer() {
	s.mu.Lock()
	s.timerGen++
	s.timerActive = false
	s.mu.Unlock()
}

// TimerActive 返回当前是否有活动倒计时
func (s *Session) TimerActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timerActive
}

func sendTimerValue(clients []clientSender, value int) {
	msg := protocol.MustNewMessage(protocol.MsgTimerValue, protocol.TimerValuePayload{Timer: value})
	for _, c := range clients {
		c.SendMessage(msg)
	}
}
