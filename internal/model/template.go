package model

// Template is a named piece of content stored in the templates table.
// CreatedAt is filled by the store on insert and is read-only for clients.
type Template struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"name" gorm:"not null"`
	Content   string `json:"content" gorm:"not null"`
	CreatedAt string `json:"created_at" gorm:"->;column:created_at"`
}

// TableName pins the table name used by the migrations.
func (Template) TableName() string {
	return "templates"
}

// NewTemplate is the creation payload; id and created_at are assigned by the store.
type NewTemplate struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// TemplateInput is the JSON body accepted for create and update.
// Pointer fields let validation reject an absent attribute while an
// empty string is stored as given.
type TemplateInput struct {
	ID      uint    `json:"id"`
	Name    *string `json:"name" validate:"required"`
	Content *string `json:"content" validate:"required"`
}

// NewTemplate converts a validated input; any id in the body is dropped.
func (in TemplateInput) NewTemplate() NewTemplate {
	return NewTemplate{Name: deref(in.Name), Content: deref(in.Content)}
}

// Template converts a validated input, keeping the body id (zero when omitted).
func (in TemplateInput) Template() Template {
	return Template{ID: in.ID, Name: deref(in.Name), Content: deref(in.Content)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
