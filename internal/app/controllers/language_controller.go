package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursewindow/internal/app/models/dto"
	"github.com/yigit/coursewindow/internal/pkg/languages"
)

// ListLanguages returns the language catalogue
// @Summary List languages
// @Description Languages a course can be taught in, with English and native names
// @Tags languages
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.LanguageResponse} "Languages retrieved successfully"
// @Router /languages [get]
func ListLanguages(ctx *gin.Context) {
	all := languages.All()
	resp := make([]dto.LanguageResponse, 0, len(all))
	for _, l := range all {
		resp = append(resp, dto.LanguageResponse{
			Code:       l.Code,
			Tag:        l.Tag.String(),
			Name:       l.Name,
			NativeName: l.NativeName,
		})
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
