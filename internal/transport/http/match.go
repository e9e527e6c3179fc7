package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

// MatchHandler plays human vs bot matches kept in memory.
type MatchHandler struct {
	SessionManager    *game.SessionManager
	DefaultDifficulty bot.Difficulty
}

func NewMatchHandler(sm *game.SessionManager, defaultDifficulty bot.Difficulty) *MatchHandler {
	return &MatchHandler{SessionManager: sm, DefaultDifficulty: defaultDifficulty}
}

type playerResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Bot  bool   `json:"bot"`
}

type moveRecordResponse struct {
	Player int `json:"player"`
	Column int `json:"column"`
	Row    int `json:"row"`
}

type matchResponse struct {
	ID            string               `json:"id"`
	Board         [][]int              `json:"board"`
	CurrentPlayer int                  `json:"currentPlayer"`
	Status        string               `json:"status"`
	Winner        string               `json:"winner,omitempty"`
	ValidMoves    []int                `json:"validMoves"`
	Players       []playerResponse     `json:"players"`
	Moves         []moveRecordResponse `json:"moves"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func snapshot(m *game.Match) matchResponse {
	state := m.State()
	grid := state.Grid()

	resp := matchResponse{
		ID:            m.ID,
		Board:         grid.Ints(),
		CurrentPlayer: int(state.CurrentPlayer()),
		Status:        string(state.Status()),
		ValidMoves:    state.ValidMoves(),
		CreatedAt:     m.CreatedAt,
	}
	if w := m.Winner(); w != nil {
		resp.Winner = w.Name()
	}
	for _, p := range m.Players() {
		resp.Players = append(resp.Players, playerResponse{ID: int(p.ID()), Name: p.Name(), Bot: game.IsBot(p)})
	}
	history := m.History()
	resp.Moves = make([]moveRecordResponse, 0, len(history))
	for _, rec := range history {
		resp.Moves = append(resp.Moves, moveRecordResponse{Player: int(rec.Player), Column: rec.Column, Row: rec.Row})
	}
	return resp
}

type liveMatchResponse struct {
	ID        string           `json:"id"`
	Players   []playerResponse `json:"players"`
	MoveCount int              `json:"moveCount"`
	CreatedAt time.Time        `json:"createdAt"`
}

// List returns every match still in progress.
func (h *MatchHandler) List(c *gin.Context) {
	active := h.SessionManager.Active()

	response := make([]liveMatchResponse, 0, len(active))
	for _, m := range active {
		item := liveMatchResponse{
			ID:        m.ID,
			MoveCount: m.State().MoveCount(),
			CreatedAt: m.CreatedAt,
		}
		for _, p := range m.Players() {
			item.Players = append(item.Players, playerResponse{ID: int(p.ID()), Name: p.Name(), Bot: game.IsBot(p)})
		}
		response = append(response, item)
	}

	c.JSON(http.StatusOK, response)
}

// Create starts a match. The body is optional; the human moves first unless
// humanFirst is false.
func (h *MatchHandler) Create(c *gin.Context) {
	var req struct {
		Name       string `json:"name"`
		Difficulty string `json:"difficulty"`
		HumanFirst *bool  `json:"humanFirst"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	difficulty := h.DefaultDifficulty
	if req.Difficulty != "" {
		difficulty = bot.ParseDifficulty(req.Difficulty)
	}
	humanFirst := req.HumanFirst == nil || *req.HumanFirst

	m, err := h.SessionManager.CreateBotMatch(c.Request.Context(), req.Name, difficulty, humanFirst)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot(m))
}

func (h *MatchHandler) Get(c *gin.Context) {
	m, err := h.SessionManager.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot(m))
}

// Play applies the human's column and, if the game goes on, the bot's reply.
func (h *MatchHandler) Play(c *gin.Context) {
	var req struct {
		Column *int `json:"column" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	m, err := h.SessionManager.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if _, err := m.Play(*req.Column); err != nil {
		writeError(c, err)
		return
	}
	if !m.State().IsTerminal() && game.IsBot(m.Current()) {
		if _, err := m.BotMove(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, snapshot(m))
}

func (h *MatchHandler) Delete(c *gin.Context) {
	if err := h.SessionManager.Remove(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
