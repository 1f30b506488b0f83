// Package sitepubsub is the message-passing boundary between the edit
// engine and a hosting surface (an embedding toolbar or preview frame).
// Events flow out after every engine mutation; commands flow in and are
// applied by a Dispatcher. The engine itself never depends on this package's
// implementations, only emits through the Publisher interface.
package sitepubsub

import (
	"context"
	"fmt"
)

// EventKind identifies one kind of editor event.
type EventKind string

const (
	// EventFieldUpdated signals a field-level edit.
	EventFieldUpdated EventKind = "field-updated"
	// EventSectionAdded signals a structural section insert.
	EventSectionAdded EventKind = "section-added"
	// EventSectionRemoved signals a structural section removal.
	EventSectionRemoved EventKind = "section-removed"
	// EventSectionMoved signals a section reorder.
	EventSectionMoved EventKind = "section-moved"
	// EventSectionToggled signals a section being enabled or disabled.
	EventSectionToggled EventKind = "section-toggled"
	// EventPublished signals a successful publish.
	EventPublished EventKind = "published"
	// EventDiscarded signals a full discard of pending edits.
	EventDiscarded EventKind = "discarded"
)

// EditorEvent is the notification emitted after an engine mutation.
type EditorEvent struct {
	Kind        EventKind `json:"kind"`
	SiteID      string    `json:"siteId"`
	Path        string    `json:"path,omitempty"`
	SectionID   string    `json:"sectionId,omitempty"`
	SectionType string    `json:"sectionType,omitempty"`
	Position    int       `json:"position,omitempty"`
	Locale      string    `json:"locale,omitempty"`
}

// CommandKind identifies one kind of editor command.
type CommandKind string

const (
	// CommandUpdateField requests a field-level edit.
	CommandUpdateField CommandKind = "update-field"
	// CommandAddSection requests a section insert.
	CommandAddSection CommandKind = "add-section"
	// CommandRemoveSection requests a section removal.
	CommandRemoveSection CommandKind = "remove-section"
	// CommandMoveSection requests a section reorder.
	CommandMoveSection CommandKind = "move-section"
	// CommandDiscard requests a full discard of pending edits.
	CommandDiscard CommandKind = "discard"
)

// EditorCommand is a mutation request sent by the hosting surface.
type EditorCommand struct {
	Kind        CommandKind `json:"kind"`
	Path        string      `json:"path,omitempty"`
	Value       any         `json:"value,omitempty"`
	SectionID   string      `json:"sectionId,omitempty"`
	SectionType string      `json:"sectionType,omitempty"`
	Region      string      `json:"region,omitempty"`
	Position    int         `json:"position,omitempty"`
}

// Message is one encoded message received from a topic.
type Message struct {
	Topic   string
	Payload []byte
	Format  EncodingFormat
}

// Event decodes the message payload as an EditorEvent.
func (m Message) Event() (EditorEvent, error) {
	var ev EditorEvent
	codec, err := GetEncoderDecoder(m.Format)
	if err != nil {
		return ev, err
	}
	err = codec.Decode(m.Payload, &ev)
	return ev, err
}

// Command decodes the message payload as an EditorCommand.
func (m Message) Command() (EditorCommand, error) {
	var cmd EditorCommand
	codec, err := GetEncoderDecoder(m.Format)
	if err != nil {
		return cmd, err
	}
	err = codec.Decode(m.Payload, &cmd)
	return cmd, err
}

// MessageHandler handles one received message.
type MessageHandler func(ctx context.Context, msg Message) error

// Publisher publishes editor messages to a topic.
type Publisher interface {
	// PublishEvent publishes an event to the topic.
	PublishEvent(ctx context.Context, topic string, ev EditorEvent) error
	// PublishCommand publishes a command to the topic.
	PublishCommand(ctx context.Context, topic string, cmd EditorCommand) error
	// Close closes the publisher.
	Close() error
}

// Subscriber subscribes to editor messages on a topic.
type Subscriber interface {
	// Subscribe registers a handler for the topic under subscriberID.
	Subscribe(ctx context.Context, topic string, subscriberID string, handler MessageHandler) error
	// Unsubscribe removes the subscriberID's handler for the topic.
	Unsubscribe(ctx context.Context, topic string, subscriberID string) error
	// Close closes the subscriber.
	Close() error
}

// PubSub combines the Publisher and Subscriber interfaces.
type PubSub interface {
	Publisher
	Subscriber
}

// Options configures a PubSub implementation.
type Options struct {
	// DefaultFormat is the encoding used for published messages.
	DefaultFormat EncodingFormat
}

// NewOptions creates Options with default values.
func NewOptions() *Options {
	return &Options{DefaultFormat: EncodingFormatJSON}
}

// EventTopic returns the event topic for one site's edit session.
func EventTopic(siteID string) string {
	return fmt.Sprintf("siteedit:%s:events", siteID)
}

// CommandTopic returns the command topic for one site's edit session.
func CommandTopic(siteID string) string {
	return fmt.Sprintf("siteedit:%s:commands", siteID)
}
