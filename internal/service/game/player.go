package game

import (
	"fmt"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
)

// Player is one side of a match.
type Player interface {
	ID() domain.PlayerID
	Name() string
}

type HumanPlayer struct {
	id   domain.PlayerID
	name string
}

func NewHumanPlayer(id domain.PlayerID, name string) *HumanPlayer {
	if name == "" {
		name = fmt.Sprintf("Player %d", id)
	}
	return &HumanPlayer{id: id, name: name}
}

func (h *HumanPlayer) ID() domain.PlayerID { return h.id }
func (h *HumanPlayer) Name() string        { return h.name }

// BotPlayer moves with a search engine.
type BotPlayer struct {
	name       string
	difficulty bot.Difficulty
	engine     *bot.Engine
}

func NewBotPlayer(id domain.PlayerID, difficulty bot.Difficulty, opts ...bot.Option) (*BotPlayer, error) {
	opts = append([]bot.Option{bot.WithDepth(difficulty.Depth())}, opts...)
	engine, err := bot.NewEngine(id, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return &BotPlayer{
		name:       difficulty.BotName(),
		difficulty: difficulty,
		engine:     engine,
	}, nil
}

func (b *BotPlayer) ID() domain.PlayerID        { return b.engine.Player() }
func (b *BotPlayer) Name() string               { return b.name }
func (b *BotPlayer) Difficulty() bot.Difficulty { return b.difficulty }
func (b *BotPlayer) Engine() *bot.Engine        { return b.engine }

// IsBot reports whether the player picks its own moves.
func IsBot(p Player) bool {
	_, ok := p.(*BotPlayer)
	return ok
}
