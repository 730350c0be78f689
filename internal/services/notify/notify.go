// Package notify is the boundary between the game core and whatever delivers
// domain events to players. The core only ever calls Emit.
package notify

//go:generate mockgen -destination=mock/mock_emitter.go -package=notifymock github.com/KirkDiggler/rpg-arena/internal/services/notify Emitter

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Event names
const (
	EventPlayerUpdate        = "playerUpdate"
	EventChallengeResult     = "challengeResult"
	EventChallengeUpdate     = "challengeUpdate"
	EventGuildUpdate         = "guildUpdate"
	EventGuildBattleUpdate   = "guildBattleUpdate"
	EventGuildBattleComplete = "guildBattleComplete"
	EventAuctionStarted      = "auctionStarted"
	EventAuctionCompleted    = "auctionCompleted"
	EventBidPlaced           = "bidPlaced"
)

// PayloadKey is the event context key holding the emitted payload
const PayloadKey = "payload"

// Emitter publishes a named domain event
type Emitter interface {
	Emit(ctx context.Context, name string, payload any) error
}

// source identifies the arena as the publisher of every event
type source struct{}

func (source) GetID() string   { return "arena" }
func (source) GetType() string { return "service" }

var _ core.Entity = source{}

// BusConfig contains configuration for the bus emitter
type BusConfig struct {
	Bus events.EventBus
}

// Validate validates the BusConfig
func (cfg *BusConfig) Validate() error {
	if cfg == nil || cfg.Bus == nil {
		return errors.InvalidArgument("event bus is required")
	}
	return nil
}

// BusEmitter publishes onto an rpg-toolkit event bus. Subscribers such as a
// websocket fan-out register on the same bus.
type BusEmitter struct {
	bus events.EventBus
}

// NewBusEmitter creates an Emitter over bus
func NewBusEmitter(cfg *BusConfig) (*BusEmitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &BusEmitter{bus: cfg.Bus}, nil
}

var _ Emitter = (*BusEmitter)(nil)

// Emit publishes name with payload stored under PayloadKey
func (e *BusEmitter) Emit(ctx context.Context, name string, payload any) error {
	event := events.NewGameEvent(name, source{}, nil)
	event.Context().Set(PayloadKey, payload)

	if err := e.bus.Publish(ctx, event); err != nil {
		return errors.Wrapf(err, "failed to publish %s", name)
	}
	return nil
}

// Discard drops every event
type Discard struct{}

// Emit does nothing
func (Discard) Emit(context.Context, string, any) error { return nil }

// Publish emits and logs a failure instead of returning it. Event delivery
// never fails the operation that produced the event.
func Publish(ctx context.Context, emitter Emitter, name string, payload any) {
	if emitter == nil {
		return
	}
	if err := emitter.Emit(ctx, name, payload); err != nil {
		slog.WarnContext(ctx, "failed to emit event", "event", name, "error", err)
	}
}
