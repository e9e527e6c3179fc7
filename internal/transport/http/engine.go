package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

// EngineHandler serves stateless move and evaluation requests.
type EngineHandler struct {
	Service      *game.Service
	DefaultDepth int
}

func NewEngineHandler(svc *game.Service, defaultDepth int) *EngineHandler {
	return &EngineHandler{Service: svc, DefaultDepth: defaultDepth}
}

type positionRequest struct {
	Board  [][]int `json:"board" binding:"required"`
	Player int     `json:"player" binding:"required"`
}

type moveRequest struct {
	positionRequest
	Difficulty string `json:"difficulty"`
	Depth      int    `json:"depth"`
}

type moveResponse struct {
	Column     int   `json:"column"`
	Score      int   `json:"score"`
	Nodes      int   `json:"nodes"`
	Depth      int   `json:"depth"`
	DurationMs int64 `json:"durationMs"`
	Cached     bool  `json:"cached"`
}

func (req positionRequest) state() (*domain.GameState, domain.PlayerID, error) {
	player := domain.PlayerID(req.Player)
	grid, err := domain.ParseGrid(req.Board)
	if err != nil {
		return nil, player, err
	}
	state, err := domain.NewGameStateFromGrid(grid, player)
	return state, player, err
}

func (h *EngineHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Move returns the engine's column for the posted position. An explicit
// depth wins over a difficulty; with neither the configured depth is used.
func (h *EngineHandler) Move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	state, player, err := req.state()
	if err != nil {
		writeError(c, err)
		return
	}

	depth := req.Depth
	if depth == 0 {
		depth = h.DefaultDepth
		if req.Difficulty != "" {
			depth = bot.ParseDifficulty(req.Difficulty).Depth()
		}
	}

	res, err := h.Service.BestMove(c.Request.Context(), state, player, depth)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, moveResponse{
		Column:     res.Column,
		Score:      res.Score,
		Nodes:      res.Nodes,
		Depth:      res.Depth,
		DurationMs: res.Duration.Milliseconds(),
		Cached:     res.Cached,
	})
}

func (h *EngineHandler) Evaluate(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	state, player, err := req.state()
	if err != nil {
		writeError(c, err)
		return
	}

	ev, err := h.Service.Evaluate(state, player)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}
