package routes

import (
	"net/http"
	"strings"

	"github.com/armii/platform-admin/pkg/constant"
	"github.com/armii/platform-admin/pkg/domains/connection"
	"github.com/armii/platform-admin/pkg/dtos"
	"github.com/gin-gonic/gin"
)

func ConnectionRoutes(r *gin.RouterGroup, t connection.Tracker) {
	r.GET("", connectedAccounts(t))
	r.GET("/status", connectionStatus(t))
	r.POST("/select", selectAccount(t))
	r.POST("/connect", connectAccount(t))
	r.POST("/extract", extractData(t))
}

// @Summary Connected account per platform name
// @Tags Set
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /connections [get]
func connectedAccounts(t connection.Tracker) func(c *gin.Context) {
	return func(c *gin.Context) {
		accounts, err := t.GetAllConnectedAccounts(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": accounts})
	}
}

// @Summary Selection and connection state of a platform
// @Tags Set
// @Produce json
// @Param platform query string true "platform name"
// @Success 200 {object} dtos.ConnectionStatusDTO
// @Failure 400 {object} map[string]string
// @Router /connections/status [get]
func connectionStatus(t connection.Tracker) func(c *gin.Context) {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.Query("platform"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": constant.PLATFORM_REQUIRED})
			return
		}

		status, err := t.Status(c.Request.Context(), name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": status})
	}
}

// @Summary Select the account of a platform and start connecting it
// @Tags Set
// @Accept json
// @Produce json
// @Param request body dtos.SelectAccountDTO true "platform name and account address"
// @Success 202 {object} dtos.ConnectionStatusDTO
// @Failure 400 {object} map[string]string
// @Router /connections/select [post]
func selectAccount(t connection.Tracker) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.SelectAccountDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}

		if _, err := t.Select(c.Request.Context(), req.PlatformName, req.AccountAddress); err != nil {
			respondError(c, err)
			return
		}
		respondAccepted(c, t, req.PlatformName)
	}
}

// @Summary Connect an account again without changing the selection
// @Tags Set
// @Accept json
// @Produce json
// @Param request body dtos.SelectAccountDTO true "platform name and account address"
// @Success 202 {object} dtos.ConnectionStatusDTO
// @Failure 400 {object} map[string]string
// @Router /connections/connect [post]
func connectAccount(t connection.Tracker) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.SelectAccountDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}

		t.Connect(c.Request.Context(), req.PlatformName, req.AccountAddress)
		respondAccepted(c, t, req.PlatformName)
	}
}

func respondAccepted(c *gin.Context, t connection.Tracker, platformName string) {
	status, err := t.Status(c.Request.Context(), platformName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"message": constant.CONNECTION_STARTED,
		"data":    status,
	})
}

// @Summary Extract the data of the connected account
// @Description Blocks until the extraction finishes.
// @Tags Set
// @Accept json
// @Produce json
// @Param request body dtos.ExtractDTO true "platform name"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "no connected account"
// @Router /connections/extract [post]
func extractData(t connection.Tracker) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.ExtractDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}

		if err := t.Extract(c.Request.Context(), req.PlatformName); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": constant.DATA_EXTRACTED})
	}
}
