// Package settings describes the settings forms of the provider and its
// notifier devices, and binds them to a key/value storage.
package settings

// Key names one field of a settings form.
type Key string

const (
	KeyIDInstance   Key = "idInstance"
	KeyAPIToken     Key = "apiToken"
	KeyLoadContacts Key = "loadContacts"
	KeyError        Key = "error"
	KeyTarget       Key = "target"
)

// Keys lists every form field in display order.
var Keys = []Key{KeyIDInstance, KeyAPIToken, KeyLoadContacts, KeyError, KeyTarget}

// FieldType tells the UI how to render a field.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypePassword FieldType = "password"
	TypeButton   FieldType = "button"
	TypeHTML     FieldType = "html"
)

// Stored reports whether values of this type are persisted. Buttons and
// html fields only carry transient state.
func (t FieldType) Stored() bool {
	return t == TypeString || t == TypePassword
}

// Field is the descriptor of one form field.
type Field struct {
	Key     Key
	Title   string
	Type    FieldType
	Hide    bool
	Choices []string
}

// Schema is an ordered set of field descriptors.
type Schema struct {
	fields []Field
}

// BuildSchema returns the form for one of the three contexts:
// plugin-level (forPlugin), device creation (forCreation) or a device's
// own form (neither).
func BuildSchema(forPlugin, forCreation bool) Schema {
	return Schema{fields: []Field{
		{Key: KeyIDInstance, Title: "Instance ID", Type: TypeString, Hide: forCreation},
		{Key: KeyAPIToken, Title: "API token", Type: TypePassword, Hide: forCreation},
		{Key: KeyLoadContacts, Title: "Load targets", Type: TypeButton, Hide: forCreation},
		{Key: KeyError, Title: "Click the load target button first", Type: TypeHTML, Hide: true},
		{Key: KeyTarget, Title: "Target", Type: TypeString, Hide: forPlugin, Choices: []string{}},
	}}
}

// Fields returns a copy of the descriptors.
func (s Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		f.Choices = append([]string(nil), f.Choices...)
		out[i] = f
	}
	return out
}

// Field looks up a descriptor by key.
func (s Schema) Field(key Key) (Field, bool) {
	for _, f := range s.fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
