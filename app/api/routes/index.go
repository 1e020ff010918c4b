package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type screen struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Endpoints   []string `json:"endpoints"`
}

var screens = []screen{
	{
		Name:        "add",
		Description: "Register platforms and add account addresses to them",
		Endpoints:   []string{"GET /platforms", "POST /platforms", "GET /platforms/search", "POST /platforms/resolve", "GET /platforms/catalog", "POST /accounts", "GET /accounts/draft"},
	},
	{
		Name:        "set",
		Description: "Pick one account per platform, connect it and extract its data",
		Endpoints:   []string{"GET /pairs", "GET /pairs/grouped", "DELETE /pairs/:id", "DELETE /pairs", "POST /connections/select", "POST /connections/connect", "POST /connections/extract", "GET /connections", "GET /connections/status"},
	},
	{
		Name:        "view",
		Description: "Read-only summary of platforms and their accounts",
		Endpoints:   []string{"GET /overview", "GET /platforms/:id/accounts", "GET /accounts/:id/platforms", "DELETE /accounts/:id", "DELETE /accounts/:id/platforms/:platformId"},
	},
}

func IndexRoutes(r *gin.RouterGroup) {
	r.GET("/", index())
}

// index lists the screens of the admin API.
// @Summary Landing page
// @Tags Index
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func index() func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": screens})
	}
}
