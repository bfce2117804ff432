package game

import (
	"encoding/json"
	"log"

	"github.com/palemoky/letter-rush/internal/apperrors"
	"github.com/palemoky/letter-rush/internal/game/pool"
	"github.com/palemoky/letter-rush/internal/protocol"
)

// --- Registry 入口：定位会话、委托、落盘 ---

// StartGame 开始游戏：进入第 1 轮并启动倒计时
func (rm *Registry) StartGame(code string) (protocol.GameState, error) {
	s, err := rm.GetSession(code)
	if err != nil {
		return protocol.GameState{}, err
	}

	state := s.startGame()
	rm.saveSnapshot(s)
	return state, nil
}

// SubmitResponse 记录玩家答案，全员齐了则广播配对并进入评分阶段
func (rm *Registry) SubmitResponse(code, playerID string, round int, response json.RawMessage) error {
	s, err := rm.GetSession(code)
	if err != nil {
		return err
	}

	s.submitResponse(playerID, round, response)
	rm.saveSnapshot(s)
	return nil
}

// SubmitScore 记录互评分数，全员齐了则广播并进入准备阶段
func (rm *Registry) SubmitScore(code, playerID string, round, score int) (protocol.GameState, error) {
	s, err := rm.GetSession(code)
	if err != nil {
		return protocol.GameState{}, err
	}

	state, err := s.submitScore(playerID, round, score)
	if err != nil {
		return protocol.GameState{}, err
	}
	rm.saveSnapshot(s)
	return state, nil
}

// SetReady 记录准备状态，全员齐了则推进到下一轮或结束对局
func (rm *Registry) SetReady(code, playerID string, round int) (protocol.GameState, error) {
	s, err := rm.GetSession(code)
	if err != nil {
		return protocol.GameState{}, err
	}

	state := s.setReady(playerID, round)
	rm.saveSnapshot(s)
	return state, nil
}

// --- Session 回合状态机 ---

// startGame Lobby → RoundActive
func (s *Session) startGame() protocol.GameState {
	s.mu.Lock()

	if s.Started {
		// 已开局的重复 startGame 只回放当前状态，不重置计时器
		state := s.snapshotLocked()
		s.mu.Unlock()
		return state
	}

	s.Started = true
	s.CurrentRound = 1
	s.state = SessionRoundActive
	s.drawLetterLocked()
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.StartTimer()

	log.Printf("🎮 房间 %s 开始游戏，字母 %s", s.Code, state.CurrentAlphabet)

	s.Broadcast(protocol.MustNewMessage(protocol.MsgGameStarted, protocol.GameStartedPayload{
		GameState: state,
	}))

	return state
}

// submitResponse RoundActive 内记录答案；屏障满足时转入 AwaitingScores
// 屏障按求值时刻的名单判断，中途退出的玩家不再计入
func (s *Session) submitResponse(playerID string, round int, response json.RawMessage) {
	s.mu.Lock()

	player := s.findPlayerLocked(playerID)
	if player == nil {
		s.mu.Unlock()
		return
	}
	// 重复提交覆盖旧值，不会让屏障重复触发
	player.Responses[round] = response

	if s.state != SessionRoundActive || !s.allRespondedLocked(round) {
		s.mu.Unlock()
		return
	}

	s.state = SessionAwaitingScores
	state := s.snapshotLocked()
	partners := s.scorePartnersLocked()
	s.mu.Unlock()

	log.Printf("📝 房间 %s 第 %d 轮答案收齐", s.Code, round)

	s.Broadcast(protocol.MustNewMessage(protocol.MsgAllSubmitted, protocol.AllSubmittedPayload{
		GameState:     state,
		ScorePartners: partners,
	}))
}

// submitScore AwaitingScores 内记录分数；屏障满足时转入 AwaitingReady
func (s *Session) submitScore(playerID string, round, score int) (protocol.GameState, error) {
	s.mu.Lock()

	if score < 0 || score > 10*len(s.Categories) {
		s.mu.Unlock()
		return protocol.GameState{}, apperrors.ErrInvalidScore
	}

	if player := s.findPlayerLocked(playerID); player != nil {
		player.Scores[round] = score
	}

	if s.state != SessionAwaitingScores || !s.allScoredLocked(round) {
		state := s.snapshotLocked()
		s.mu.Unlock()
		return state, nil
	}

	s.state = SessionAwaitingReady
	state := s.snapshotLocked()
	s.mu.Unlock()

	log.Printf("💯 房间 %s 第 %d 轮分数收齐", s.Code, round)

	s.Broadcast(protocol.MustNewMessage(protocol.MsgAllScoresSubmitted, protocol.AllScoresSubmittedPayload{
		GameState: state,
	}))

	return state, nil
}

// setReady AwaitingReady 内记录准备；全员就绪后推进或结束
func (s *Session) setReady(playerID string, round int) protocol.GameState {
	s.mu.Lock()

	if player := s.findPlayerLocked(playerID); player != nil {
		player.Ready[round] = true
	}

	if s.state != SessionAwaitingReady || !s.allReadyLocked(round) {
		state := s.snapshotLocked()
		s.mu.Unlock()
		return state
	}

	if s.CurrentRound == s.MaxRounds {
		return s.endGameLocked()
	}
	return s.nextRoundLocked()
}

// nextRoundLocked 推进到下一轮：新字母、计时归零重启
// 调用方持有 s.mu，内部负责解锁
func (s *Session) nextRoundLocked() protocol.GameState {
	s.CurrentRound++
	s.state = SessionRoundActive
	s.drawLetterLocked()
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.StartTimer()

	log.Printf("🔄 房间 %s 进入第 %d 轮，字母 %s", s.Code, state.CurrentRound, state.CurrentAlphabet)

	s.Broadcast(protocol.MustNewMessage(protocol.MsgAllPlayersReady, protocol.AllPlayersReadyPayload{
		GameState: state,
	}))

	return state
}

// endGameLocked 结算总分并把会话重置为大厅形态
// 名单和头像保留，轮次数据清空，可直接再来一局
// 调用方持有 s.mu，内部负责解锁
func (s *Session) endGameLocked() protocol.GameState {
	finalScores := make([]protocol.FinalScore, 0, len(s.Users))
	for _, u := range s.Users {
		finalScores = append(finalScores, protocol.FinalScore{
			Name:     u.Name,
			Score:    u.TotalScore(),
			AvatarID: u.AvatarIndex,
		})
	}

	s.Started = false
	s.CurrentRound = 0
	s.state = SessionLobby
	s.CurrentAlphabet = ""
	s.CurrentTimerValue = 0
	s.letterPool.Reset(pool.Alphabet())
	for _, u := range s.Users {
		u.clearRounds()
	}

	state := s.snapshotLocked()
	s.mu.Unlock()

	// 最后一轮的倒计时不再有意义，静默取消
	s.cancelTimer()

	log.Printf("🏁 房间 %s 对局结束", s.Code)

	s.Broadcast(protocol.MustNewMessage(protocol.MsgGameEnded, protocol.GameEndedPayload{
		Scores:    finalScores,
		GameState: state,
	}))

	return state
}

// drawLetterLocked 重置字母池后抽取本轮字母
// 每轮独立重置，跨轮重复是允许的
func (s *Session) drawLetterLocked() {
	s.letterPool.Reset(pool.Alphabet())
	letter, err := s.letterPool.DrawRandom()
	if err != nil {
		// 刚重置的 26 字母池不可能抽空
		log.Printf("💥 房间 %s 字母池异常: %v", s.Code, err)
		return
	}
	s.CurrentAlphabet = letter
}

// scorePartnersLocked 按名单顺序生成环形后继配对
// 每人恰好给一人评分，也恰好被一人评分
func (s *Session) scorePartnersLocked() []protocol.ScorePair {
	n := len(s.Users)
	partners := make([]protocol.ScorePair, 0, n)
	for i, u := range s.Users {
		partners = append(partners, protocol.ScorePair{
			Scorer: s.userInfoLocked(u),
			Target: s.userInfoLocked(s.Users[(i+1)%n]),
		})
	}
	return partners
}

// --- 屏障检查：对当前名单全量扫描 ---

func (s *Session) allRespondedLocked(round int) bool {
	if len(s.Users) == 0 {
		return false
	}
	for _, u := range s.Users {
		if len(u.Responses[round]) == 0 {
			return false
		}
	}
	return true
}

func (s *Session) allScoredLocked(round int) bool {
	if len(s.Users) == 0 {
		return false
	}
	for _, u := range s.Users {
		if _, ok := u.Scores[round]; !ok {
			return false
		}
	}
	return true
}

func (s *Session) allReadyLocked(round int) bool {
	if len(s.Users) == 0 {
		return false
	}
	for _, u := range s.Users {
		if !u.Ready[round] {
			return false
		}
	}
	return true
}
