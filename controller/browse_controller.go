package controller

import (
	"cafein/client"
	"cafein/model"
	"cafein/store"
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type CafeReader interface {
	List(ctx context.Context) ([]model.CafeRecord, error)
	Get(ctx context.Context, id string) (model.CafeRecord, error)
}

// BrowseController backs the listing and detail pages. It is the part of
// the application that fills the shared café state.
type BrowseController struct {
	Cafes CafeReader
	State *store.AppState
}

func NewBrowseController(cafes CafeReader, state *store.AppState) *BrowseController {
	return &BrowseController{Cafes: cafes, State: state}
}

func upstreamStatus(err error) int {
	var se *client.StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// List reloads AllCafes from the endpoint. When the reload fails the
// previous list is served with the error.
func (ctl *BrowseController) List(c *gin.Context) {
	cafes, err := ctl.Cafes.List(c.Request.Context())
	if err != nil {
		log.Printf("reload cafes: %v", err)
		c.JSON(upstreamStatus(err), gin.H{
			"success": false,
			"error":   err.Error(),
			"data":    ctl.State.AllCafes(),
		})
		return
	}
	ctl.State.SetAllCafes(cafes)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": ctl.State.AllCafes()})
}

func (ctl *BrowseController) Show(c *gin.Context) {
	cafe, err := ctl.Cafes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("load cafe %s: %v", c.Param("id"), err)
		c.JSON(upstreamStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}
	ctl.State.SetCurrentCafe(cafe)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cafe})
}

func (ctl *BrowseController) Current(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": ctl.State.CurrentCafe()})
}
