package model

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateInput_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "both present", body: `{"name":"A","content":"B"}`},
		{name: "empty strings are values", body: `{"name":"","content":""}`},
		{name: "missing name", body: `{"content":"B"}`, wantErr: true},
		{name: "missing content", body: `{"name":"A"}`, wantErr: true},
		{name: "null name", body: `{"name":null,"content":"B"}`, wantErr: true},
	}

	validate := validator.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in TemplateInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))

			err := validate.Struct(in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTemplateInput_Conversions(t *testing.T) {
	var in TemplateInput
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"","content":"body"}`), &in))

	assert.Equal(t, NewTemplate{Name: "", Content: "body"}, in.NewTemplate())
	assert.Equal(t, Template{ID: 7, Name: "", Content: "body"}, in.Template())
}
