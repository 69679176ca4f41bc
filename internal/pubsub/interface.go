package pubsub

// PubSubClient publishes platform events and decodes received messages.
type PubSubClient interface {
	SendMessage(topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
}
