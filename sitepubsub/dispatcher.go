package sitepubsub

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/indyavik/theme-1-multi-site/sitedoc"
)

// EditorAPI is the mutation surface a Dispatcher drives. The siteedit
// Editor implements it.
type EditorAPI interface {
	UpdateField(ctx context.Context, path string, value any) error
	AddSection(ctx context.Context, sectionType, region string, position int) *sitedoc.Section
	RemoveSection(ctx context.Context, id string) bool
	MoveSection(ctx context.Context, id string, position int) bool
	Discard(ctx context.Context) error
}

// Dispatcher subscribes to a command topic and applies incoming editor
// commands to a local editor.
type Dispatcher struct {
	editor EditorAPI
	sub    Subscriber
	logger zerolog.Logger
}

// NewDispatcher creates a Dispatcher applying commands to editor.
func NewDispatcher(editor EditorAPI, sub Subscriber, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{editor: editor, sub: sub, logger: logger}
}

// Listen subscribes to the topic and applies every decoded command until
// the subscription is closed.
func (d *Dispatcher) Listen(ctx context.Context, topic string, subscriberID string) error {
	if d.editor == nil || d.sub == nil {
		return errors.New("dispatcher requires an editor and a subscriber")
	}
	return d.sub.Subscribe(ctx, topic, subscriberID, func(ctx context.Context, msg Message) error {
		cmd, err := msg.Command()
		if err != nil {
			d.logger.Warn().Err(err).Str("topic", topic).Msg("dropping undecodable command")
			return nil
		}
		return d.Apply(ctx, cmd)
	})
}

// Apply executes one command against the editor. Unknown command kinds are
// an error; structural no-ops (unknown ids, invalid positions) are not.
func (d *Dispatcher) Apply(ctx context.Context, cmd EditorCommand) error {
	switch cmd.Kind {
	case CommandUpdateField:
		return d.editor.UpdateField(ctx, cmd.Path, cmd.Value)
	case CommandAddSection:
		d.editor.AddSection(ctx, cmd.SectionType, cmd.Region, cmd.Position)
		return nil
	case CommandRemoveSection:
		d.editor.RemoveSection(ctx, cmd.SectionID)
		return nil
	case CommandMoveSection:
		d.editor.MoveSection(ctx, cmd.SectionID, cmd.Position)
		return nil
	case CommandDiscard:
		return d.editor.Discard(ctx)
	}
	return errors.Errorf("unknown command kind %q", cmd.Kind)
}
