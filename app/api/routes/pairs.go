package routes

import (
	"net/http"

	"github.com/armii/platform-admin/pkg/constant"
	"github.com/armii/platform-admin/pkg/domains/platform"
	"github.com/gin-gonic/gin"
)

func PairRoutes(r *gin.RouterGroup, s platform.Service) {
	r.GET("", listPairs(s))
	r.GET("/grouped", groupedPairs(s))
	r.DELETE("/:id", deletePair(s))
	r.DELETE("", clearPairs(s))
}

// @Summary List platform-account pairs
// @Tags Set
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /pairs [get]
func listPairs(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": s.GetPlatformAccountPairs()})
	}
}

// @Summary Pairs grouped by platform
// @Tags Set
// @Produce json
// @Param by query string false "name (default) or type"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /pairs/grouped [get]
func groupedPairs(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		groups, err := s.Grouped(c.Query("by"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": groups})
	}
}

// @Summary Delete one pair
// @Tags Set
// @Param id path string true "pair id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /pairs/{id} [delete]
func deletePair(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		if err := s.DeletePlatformAccountPair(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": constant.DELETED})
	}
}

// @Summary Delete every pair
// @Tags Set
// @Success 200 {object} map[string]string
// @Router /pairs [delete]
func clearPairs(s platform.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		s.ClearPlatformAccountPairs()
		c.JSON(http.StatusOK, gin.H{"message": constant.PAIRS_CLEARED})
	}
}
