package routes

import (
	"net/http"

	"github.com/armii/platform-admin/pkg/constant"
	"github.com/armii/platform-admin/pkg/domains/platform"
	"github.com/armii/platform-admin/pkg/dtos"
	"github.com/gin-gonic/gin"
)

func PlatformRoutes(r *gin.RouterGroup, s platform.Service) {
	r.GET("/platforms", listPlatforms(s))
	r.POST("/platforms", createPlatform(s))
	r.GET("/platforms/search", searchPlatforms(s))
	r.POST("/platforms/resolve", resolvePlatform(s))
	r.GET("/platforms/catalog", platformCatalog(s))
	r.GET("/platforms/:id/accounts", platformAccounts(s))

	r.POST("/accounts", saveAccounts(s))
	r.GET("/accounts/draft", accountsDraft(s))
	r.GET("/accounts/:id/platforms", accountPlatforms(s))
	r.DELETE("/accounts/:id", deleteAccount(s))
	r.DELETE("/accounts/:id/platforms/:platformId", deleteAccountFromPlatform(s))

	r.GET("/overview", overview(s))
}

// @Summary List platforms
// @Tags Platform
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /platforms [get]
func listPlatforms(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": s.Platforms()})
	}
}

// @Summary Add a platform
// @Tags Platform
// @Accept json
// @Produce json
// @Param request body dtos.CreatePlatformDTO true "platform name"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "name already registered"
// @Router /platforms [post]
func createPlatform(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.CreatePlatformDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}

		p, err := s.CreatePlatform(c.Request.Context(), req.Name)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": constant.PLATFORM_CREATED,
			"data":    p,
		})
	}
}

// @Summary Search registered platforms
// @Tags Platform
// @Produce json
// @Param q query string true "name or type fragment"
// @Success 200 {object} dtos.PlatformSearchDTO
// @Router /platforms/search [get]
func searchPlatforms(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": s.SearchPlatforms(c.Query("q"))})
	}
}

// @Summary Add the catalog platform a search names
// @Tags Platform
// @Accept json
// @Produce json
// @Param request body dtos.ResolvePlatformDTO true "search query"
// @Success 200 {object} dtos.ResolvePlatformResponseDTO "already registered"
// @Success 201 {object} dtos.ResolvePlatformResponseDTO "created"
// @Failure 404 {object} map[string]string "not in catalog"
// @Router /platforms/resolve [post]
func resolvePlatform(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.ResolvePlatformDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}

		p, created, err := s.ResolveSearch(c.Request.Context(), req.Query)
		if err != nil {
			respondError(c, err)
			return
		}

		resp := dtos.ResolvePlatformResponseDTO{Platform: &p, Created: created}
		if created {
			c.JSON(http.StatusCreated, gin.H{"message": constant.PLATFORM_CREATED, "data": resp})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": constant.PLATFORM_RESOLVED, "data": resp})
	}
}

// @Summary Catalog names not registered yet
// @Tags Platform
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /platforms/catalog [get]
func platformCatalog(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": s.AvailableCatalog()})
	}
}

// @Summary Accounts linked to a platform
// @Tags View
// @Produce json
// @Param id path string true "platform id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /platforms/{id}/accounts [get]
func platformAccounts(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		accounts, err := s.GetPlatformAccounts(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": accounts})
	}
}

// @Summary Save account addresses per platform
// @Tags Platform
// @Accept json
// @Produce json
// @Param request body dtos.SavePlatformAccountsDTO true "addresses per platform id"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "blank addresses, the rest is saved"
// @Failure 404 {object} map[string]interface{} "unknown platform id, the rest is saved"
// @Router /accounts [post]
func saveAccounts(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.SavePlatformAccountsDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}

		saved, err := s.SaveAccounts(c.Request.Context(), req)
		result := dtos.SaveResultDTO{Saved: saved}
		if err != nil {
			status, body := errorResponse(c, err)
			body["message"] = constant.ACCOUNTS_PARTIAL
			body["data"] = result
			c.JSON(status, body)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": constant.ACCOUNTS_SAVED,
			"data":    result,
		})
	}
}

// @Summary Saved addresses per platform id for the add form
// @Tags Platform
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /accounts/draft [get]
func accountsDraft(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": s.Draft()})
	}
}

// @Summary Platforms an account is linked to
// @Tags View
// @Produce json
// @Param id path string true "account id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /accounts/{id}/platforms [get]
func accountPlatforms(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		platforms, err := s.GetAccountPlatforms(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": platforms})
	}
}

// @Summary Delete an account and its links
// @Tags View
// @Param id path string true "account id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /accounts/{id} [delete]
func deleteAccount(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		if err := s.DeleteAccount(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": constant.DELETED})
	}
}

// @Summary Unlink an account from a platform
// @Description The account is removed as well once it has no links left.
// @Tags View
// @Param id path string true "account id"
// @Param platformId path string true "platform id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /accounts/{id}/platforms/{platformId} [delete]
func deleteAccountFromPlatform(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		if err := s.DeleteAccountFromPlatform(c.Param("id"), c.Param("platformId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": constant.DELETED})
	}
}

// @Summary Platforms with their linked accounts
// @Tags View
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /overview [get]
func overview(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		cards, err := s.Overview()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": cards})
	}
}
