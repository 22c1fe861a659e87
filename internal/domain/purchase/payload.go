package purchase

// Field is one labelled value in a buyer-facing message.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Payload is a presentation-neutral message. The chat layer renders it however it likes.
type Payload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields,omitempty"`
	IconURL     string  `json:"icon_url,omitempty"`
}

func (p *Payload) AddField(name, value string, inline bool) {
	p.Fields = append(p.Fields, Field{Name: name, Value: value, Inline: inline})
}
