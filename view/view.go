// Package view renders the café registration page.
package view

import (
	"cafein/model"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

const CafeInfoTemplate = "cafe_info.html"

func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(files, "templates/*.html"))
}

type Input struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	Required    bool
}

type Page struct {
	Inputs     []Input
	Facilities []model.Facility
	Status     string
	Message    string
	Failed     bool
}

type inputSpec struct {
	name, label, placeholder string
	required                 bool
	value                    func(model.CafeRecord) string
}

var inputs = []inputSpec{
	{"name", "", "카페명을 입력해주세요", true, func(r model.CafeRecord) string { return r.Name }},
	{"openTime", "OPEN :", "9:00", true, func(r model.CafeRecord) string { return r.OpenTime }},
	{"closeTime", "CLOSE :", "22:00", true, func(r model.CafeRecord) string { return r.CloseTime }},
	{"address", "주소 :", "", true, func(r model.CafeRecord) string { return r.Address }},
	{"contact", "연락처 :", "", true, func(r model.CafeRecord) string { return r.Contact }},
	{"notice", "공지사항", "", false, func(r model.CafeRecord) string { return r.Notice }},
}

// NewPage lays out the inputs in page order, filled from draft.
// facilities must carry titles; the draft's own list does not.
func NewPage(draft model.CafeRecord, facilities []model.Facility, status string) Page {
	p := Page{Facilities: facilities, Status: status}
	for _, in := range inputs {
		p.Inputs = append(p.Inputs, Input{
			Name:        in.name,
			Label:       in.label,
			Placeholder: in.placeholder,
			Value:       in.value(draft),
			Required:    in.required,
		})
	}
	return p
}
