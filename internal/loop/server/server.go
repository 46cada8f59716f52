// Package server is the lobby shared by every SSH connection. Each connection
// plays its own loop.Session; the server only tracks who is connected, keeps a
// live leaderboard, owns the shared high-score board and fans out events such
// as a new high score or a shutdown notice.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/circle-shooter/internal/loop/config"
	"github.com/tomz197/circle-shooter/internal/score"
)

// GameServer is the interface clients use to communicate with the lobby.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID, score int)
	ReportGameOver(clientID, final, high int)
	GetSnapshot() *LobbySnapshot
	Board() *score.Board
}

// Server tracks connected clients and aggregates their scores.
type Server struct {
	board        *score.Board
	snapshot     atomic.Pointer[LobbySnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	lastHigh     int
	scoreCh      chan ClientScore
	unregisterCh chan int
	stopped      chan struct{} // Closed when Run returns
	stopOnce     sync.Once
	mu           sync.RWMutex
	ranking      leaderboard // Only touched by the Run goroutine
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (high score, shutdown)
	best     int              // Best score this connection, shown on the leaderboard
}

// ClientScore is a score report from a specific client.
type ClientScore struct {
	ClientID int
	Score    int
	Final    bool
	High     int // Board high score after a final report
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type     ClientEventType
	Username string // Who set the new high score
	Score    int
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventHighScore ClientEventType = iota
	EventServerShutdown
)

// NewServer creates a lobby that records high scores on board.
func NewServer(board *score.Board) *Server {
	if board == nil {
		board = score.NewBoard(nil)
	}
	s := &Server{
		board:        board,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		lastHigh:     board.High(),
		scoreCh:      make(chan ClientScore, 256),
		unregisterCh: make(chan int, 16),
		stopped:      make(chan struct{}),
	}

	s.snapshot.Store(&LobbySnapshot{HighScore: s.lastHigh})
	return s
}

// Run processes registrations and score reports until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()
	defer s.stopOnce.Do(func() { close(s.stopped) })

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.step()
		}
	}
}

// step runs one lobby update.
func (s *Server) step() {
	s.processUnregistrations()
	s.collectScores()
	s.createSnapshot()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.processUnregistrations()
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.clients[id] = handle
	s.mu.Unlock()

	log.Info("Client registered", "client", id, "user", username)
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	select {
	case s.unregisterCh <- clientID:
	case <-s.stopped:
	}
}

// ReportScore updates a client's live score (non-blocking, may drop).
func (s *Server) ReportScore(clientID, score int) {
	select {
	case s.scoreCh <- ClientScore{ClientID: clientID, Score: score}:
	default:
		// Score channel full; the next report supersedes this one
	}
}

// ReportGameOver records a finished play-through. high is the board's high
// score after the client's session submitted final.
func (s *Server) ReportGameOver(clientID, final, high int) {
	select {
	case s.scoreCh <- ClientScore{ClientID: clientID, Score: final, Final: true, High: high}:
	case <-s.stopped:
		// Lobby is gone; the board already holds the score
	}
}

// GetSnapshot returns the current lobby snapshot.
func (s *Server) GetSnapshot() *LobbySnapshot {
	return s.snapshot.Load()
}

// Board returns the shared high-score board.
func (s *Server) Board() *score.Board {
	return s.board
}

// processUnregistrations removes clients that left and closes their event channels.
func (s *Server) processUnregistrations() {
	for {
		select {
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				log.Info("Client unregistered", "client", clientID, "user", handle.Username, "best", handle.best)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectScores applies pending score reports and announces new high scores.
func (s *Server) collectScores() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case cs := <-s.scoreCh:
			handle, ok := s.clients[cs.ClientID]
			if !ok {
				continue
			}
			handle.best = max(handle.best, cs.Score)
			if cs.Final {
				if cs.High > s.lastHigh && cs.High == cs.Score {
					s.lastHigh = cs.High
					s.broadcastLocked(ClientEvent{Type: EventHighScore, Username: handle.Username, Score: cs.High}, cs.ClientID)
				}
			}
		default:
			return
		}
	}
}

// broadcastLocked sends ev to every client except skipID. Must be called with lock held.
func (s *Server) broadcastLocked(ev ClientEvent, skipID int) {
	for id, handle := range s.clients {
		if id == skipID {
			continue
		}
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// createSnapshot publishes the leaderboard for clients to render.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.ranking.reset()
	for id, handle := range s.clients {
		s.ranking.add(TopScoreEntry{Username: handle.Username, Score: handle.best, clientID: id})
	}

	s.snapshot.Store(&LobbySnapshot{
		Players:   len(s.clients),
		HighScore: s.lastHigh,
		TopScores: s.ranking.top(config.TopScoresCount),
	})
}
