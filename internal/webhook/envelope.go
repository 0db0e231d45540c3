package webhook

// Types for the WhatsApp Cloud API delivery envelope. Only the fields the
// dispatcher reads are declared; everything else in the payload is ignored.

type deliveryEnvelope struct {
	Entry []entry `json:"entry"`
}

type entry struct {
	Changes []change `json:"changes"`
}

type change struct {
	Value changeValue `json:"value"`
}

type changeValue struct {
	Messages []inboundMessage `json:"messages"`
	Statuses []statusEvent    `json:"statuses"`
}

type inboundMessage struct {
	From string      `json:"from"`
	Type string      `json:"type"`
	Text messageText `json:"text"`
}

type messageText struct {
	Body string `json:"body"`
}

// statusEvent reports the delivery state of a previously sent message. These
// are acknowledged and ignored.
type statusEvent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
