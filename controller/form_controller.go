package controller

import (
	"cafein/form"
	"cafein/view"
	"encoding/json"
	"github.com/gin-gonic/gin"
	"net/http"
)

const SessionCookie = "cafe_form_session"

// FormController serves the registration page and its input events.
// Each browser gets its own form through the session cookie.
type FormController struct {
	Forms     *form.Registry
	Submitter form.Submitter
}

func NewFormController(forms *form.Registry, submitter form.Submitter) *FormController {
	return &FormController{Forms: forms, Submitter: submitter}
}

// session mounts a form for the browser when it has none. Only the page
// itself does this; event routes go through existing.
func (ctl *FormController) session(c *gin.Context) *form.Form {
	cookie, _ := c.Cookie(SessionCookie)
	id, f := ctl.Forms.Open(cookie)
	if id != cookie {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	}
	return f
}

func (ctl *FormController) existing(c *gin.Context) (*form.Form, bool) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie == "" {
		return nil, false
	}
	return ctl.Forms.Get(cookie)
}

// requireSession answers 404 when the browser has no mounted form.
func (ctl *FormController) requireSession(c *gin.Context) (*form.Form, bool) {
	f, ok := ctl.existing(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Form session not found, open /cafe-info first"})
	}
	return f, ok
}

func (ctl *FormController) Show(c *gin.Context) {
	f := ctl.session(c)
	c.HTML(http.StatusOK, view.CafeInfoTemplate, view.NewPage(f.Draft(), f.Facilities(), f.Status().String()))
}

func (ctl *FormController) Draft(c *gin.Context) {
	f, ok := ctl.requireSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status":     f.Status().String(),
			"draft":      f.Draft(),
			"facilities": f.Facilities(),
		},
	})
}

func (ctl *FormController) UpdateField(c *gin.Context) {
	var req struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "field is required"})
		return
	}

	update, err := form.ParseFieldUpdate(req.Field, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	f, ok := ctl.requireSession(c)
	if !ok {
		return
	}
	draft := f.Update(update)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": draft})
}

func (ctl *FormController) ToggleFacility(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Checked bool   `json:"checked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "facility name is required"})
		return
	}

	f, ok := ctl.requireSession(c)
	if !ok {
		return
	}
	facilities, ok := f.Toggle(req.Name, req.Checked)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown facility: " + req.Name})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"facilities": facilities,
			"draft":      f.Draft(),
		},
	})
}

// Confirm handles the page's own submit: every posted text field is
// applied, each checkbox is taken as checked when posted, then the draft
// is sent. A browser without a form is sent back to the page.
func (ctl *FormController) Confirm(c *gin.Context) {
	f, ok := ctl.existing(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/cafe-info")
		return
	}

	for _, name := range form.TextFields {
		value, ok := c.GetPostForm(name)
		if !ok {
			continue
		}
		update, err := form.ParseFieldUpdate(name, value)
		if err != nil {
			continue
		}
		f.Update(update)
	}
	for _, name := range form.FacilityNames() {
		f.Toggle(name, c.PostForm(name) != "")
	}

	res := <-f.Submit(c.Request.Context(), ctl.Submitter)

	page := view.NewPage(f.Draft(), f.Facilities(), f.Status().String())
	status := http.StatusOK
	if res.OK() {
		page.Message = "카페 정보가 등록되었습니다."
	} else {
		page.Failed = true
		page.Message = "카페 정보 등록에 실패했습니다: " + res.Err.Error()
		status = http.StatusBadGateway
	}
	c.HTML(status, view.CafeInfoTemplate, page)
}

func (ctl *FormController) Submit(c *gin.Context) {
	f, ok := ctl.requireSession(c)
	if !ok {
		return
	}
	res := <-f.Submit(c.Request.Context(), ctl.Submitter)
	if !res.OK() {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": res.Err.Error()})
		return
	}

	var response any = res.Response
	if !json.Valid(res.Response) {
		response = string(res.Response)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cafe submitted",
		"data": gin.H{
			"record":   res.Record,
			"response": response,
		},
	})
}
