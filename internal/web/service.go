package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/arcanechess/arcanechess/internal/ai"
	"github.com/arcanechess/arcanechess/internal/config"
	"github.com/arcanechess/arcanechess/internal/game"
)

// Service is the JSON boundary in front of the engine. It keeps any number
// of concurrent sessions and forwards their events to the WebSocket hub.
type Service struct {
	config *config.Config
	hub    *Hub

	mu       sync.RWMutex
	sessions map[string]*game.Session
}

func NewService(cfg *config.Config, hub *Hub) *Service {
	return &Service{
		config:   cfg,
		hub:      hub,
		sessions: make(map[string]*game.Session),
	}
}

// Routes registers every handler on the router.
func (s *Service) Routes(r *mux.Router) {
	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/games", s.CreateGameHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/games/{id}", s.GetGameHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/games/{id}/select", s.SelectHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/games/{id}/move", s.MoveHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/games/{id}/ability", s.AbilityHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/games/{id}/end-turn", s.EndTurnHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/games/{id}/reset", s.ResetHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/games/{id}/phase", s.PhaseHandler).Methods(http.MethodPost)
	r.HandleFunc("/ws", s.WebSocketHandler(s.hub)).Methods(http.MethodGet)
}

func (s *Service) session(r *http.Request) *game.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[mux.Vars(r)["id"]]
}

func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	n := len(s.sessions)
	s.mu.RUnlock()
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"games":  n,
	})
}

type CreateGameRequest struct {
	Mode       string `json:"mode"`       // "pvp" or "pve"
	Difficulty string `json:"difficulty"` // pve only
}

func (s *Service) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	mode := game.ModeHumanVsHuman
	if req.Mode == string(game.ModeHumanVsAI) {
		mode = game.ModeHumanVsAI
	}

	session := game.NewSession()
	session.SetManaRegen(s.config.Game.ManaRegen)

	if mode == game.ModeHumanVsAI {
		diff, err := ai.ParseDifficulty(req.Difficulty)
		if err != nil {
			diff, _ = ai.ParseDifficulty(s.config.AI.Difficulty)
		}
		controller := ai.New(game.Black, diff)
		if ms := s.config.AI.SearchBudgetMs; ms > 0 {
			controller.SetBudget(time.Duration(ms) * time.Millisecond)
		}
		session.SetAI(controller)
	}

	gameID := session.ID()
	session.Subscribe(func(ev game.Event) {
		s.hub.BroadcastEvent(gameID, ev)
	})
	session.StartGame(mode)

	s.mu.Lock()
	s.sessions[gameID] = session
	s.mu.Unlock()

	log.Info().Str("gameID", gameID).Str("mode", string(mode)).Msg("Game created")
	writeJSON(w, s.stateResponse(session))
}

func (s *Service) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	if session == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	writeJSON(w, s.stateResponse(session))
}

type SelectRequest struct {
	Position game.Position `json:"position"`
}

func (s *Service) SelectHandler(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	if session == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session.SelectPiece(req.Position)
	selected, ok := session.Selected()
	writeJSON(w, map[string]interface{}{
		"selected":    selected,
		"hasSelected": ok,
		"highlighted": session.Highlighted(),
	})
}

type MoveRequest struct {
	From game.Position `json:"from"`
	To   game.Position `json:"to"`
}

func (s *Service) MoveHandler(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	if session == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !session.MovePiece(req.From, req.To) {
		log.Info().
			Str("gameID", session.ID()).
			Str("from", req.From.String()).
			Str("to", req.To.String()).
			Msg("Move rejected")
		http.Error(w, "Illegal move", http.StatusBadRequest)
		return
	}

	s.scheduleAIReply(session)
	writeJSON(w, s.stateResponse(session))
}

type AbilityRequest struct {
	PieceID   string         `json:"pieceId"`
	AbilityID string         `json:"abilityId"`
	Target    *game.Position `json:"target,omitempty"`
}

func (s *Service) AbilityHandler(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	if session == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	var req AbilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	outcome := session.UseAbility(req.PieceID, req.AbilityID, req.Target)
	writeJSON(w, outcome)
}

func (s *Service) EndTurnHandler(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	if session == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	session.EndTurn()
	s.scheduleAIReply(session)
	writeJSON(w, s.stateResponse(session))
}

func (s *Service) ResetHandler(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	if session == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	session.Reset()
	writeJSON(w, s.stateResponse(session))
}

type PhaseRequest struct {
	Phase game.GamePhase `json:"phase"`
}

func (s *Service) PhaseHandler(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	if session == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	var req PhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	switch req.Phase {
	case game.PhasePaused:
		session.Pause()
	case game.PhasePlaying:
		session.Resume()
	default:
		http.Error(w, "Unsupported phase transition", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.stateResponse(session))
}

// scheduleAIReply kicks the opponent after a short delay so observers can
// see the human move land first. The session itself refuses overlapping
// searches, so firing this on every command is safe.
func (s *Service) scheduleAIReply(session *game.Session) {
	if !session.AITurn() {
		return
	}
	delay := time.Duration(s.config.AI.MoveDelayMs) * time.Millisecond
	go func() {
		time.Sleep(delay)
		if session.PlayAITurn() {
			log.Info().Str("gameID", session.ID()).Msg("AI move applied")
		}
	}()
}

// GameStateResponse is the full snapshot the UI renders from.
type GameStateResponse struct {
	ID          string          `json:"id"`
	Phase       game.GamePhase  `json:"phase"`
	Mode        game.GameMode   `json:"mode"`
	Turn        string          `json:"turn"`
	TurnCount   int             `json:"turnCount"`
	Winner      string          `json:"winner,omitempty"`
	Draw        bool            `json:"draw,omitempty"`
	Pieces      []*game.Piece   `json:"pieces"`
	Highlighted []game.Position `json:"highlighted,omitempty"`
	History     []game.Move     `json:"history"`
}

func (s *Service) stateResponse(session *game.Session) GameStateResponse {
	resp := GameStateResponse{
		ID:          session.ID(),
		Phase:       session.Phase(),
		Mode:        session.Mode(),
		Turn:        session.Turn().String(),
		TurnCount:   session.TurnCount(),
		Draw:        session.Draw(),
		Pieces:      session.Board().AllPieces(),
		Highlighted: session.Highlighted(),
		History:     session.History(),
	}
	if winner, ok := session.Winner(); ok {
		resp.Winner = winner.String()
	}
	return resp
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
