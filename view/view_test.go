package view

import (
	"bytes"
	"cafein/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNewPageOrdersInputs(t *testing.T) {
	draft := model.NewCafeRecord()
	draft.Name = "Bean"
	draft.Notice = "closed monday"

	p := NewPage(draft, nil, "editing")

	names := []string{}
	for _, in := range p.Inputs {
		names = append(names, in.Name)
	}
	assert.Equal(t, []string{"name", "openTime", "closeTime", "address", "contact", "notice"}, names)
	assert.Equal(t, "Bean", p.Inputs[0].Value)
	assert.Equal(t, "closed monday", p.Inputs[5].Value)
	assert.False(t, p.Inputs[5].Required)
	assert.True(t, p.Inputs[1].Required)
}

func TestTemplateRendersFacilities(t *testing.T) {
	facilities := []model.Facility{
		{Name: "hasParking", Title: "주차공간", Checked: true},
		{Name: "hasDessert", Title: "디저트 판매 여부"},
	}
	page := NewPage(model.NewCafeRecord(), facilities, "submitted")
	page.Message = "done"

	var buf bytes.Buffer
	require.NoError(t, Templates().ExecuteTemplate(&buf, CafeInfoTemplate, page))

	out := buf.String()
	assert.Contains(t, out, "주차공간")
	assert.Contains(t, out, "디저트 판매 여부")
	assert.Contains(t, out, `data-status="submitted"`)
	assert.Contains(t, out, "done")
}
