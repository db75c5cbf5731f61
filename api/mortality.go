package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/antioquia-open-data/mortality-api/consts"
	"github.com/antioquia-open-data/mortality-api/dashboard"
	"github.com/antioquia-open-data/mortality-api/dataset"
	"github.com/antioquia-open-data/mortality-api/schema"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// years - the year options, the all years sentinel first
func (s *Server) years(c *gin.Context) {
	options := []interface{}{schema.AllYearsLabel}
	for _, y := range s.dashboard.Years() {
		options = append(options, y)
	}

	c.JSON(http.StatusOK, gin.H{
		"years": options,
	})
}

func (s *Server) render(c *gin.Context) {
	sel, ok := parseSelection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.dashboard.Render(sel.year, sel.metric, localizer(c)))
}

func (s *Server) mapLayer(c *gin.Context) {
	sel, ok := parseSelection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.dashboard.MapLayer(sel.year, sel.metric, localizer(c)))
}

func (s *Server) ranking(c *gin.Context) {
	sel, ok := parseSelection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.dashboard.Ranking(sel.year, sel.metric, sel.direction, localizer(c)))
}

func (s *Server) rankingChart(c *gin.Context) {
	sel, ok := parseSelection(c)
	if !ok {
		return
	}

	chart := s.dashboard.Ranking(sel.year, sel.metric, sel.direction, localizer(c))
	data, err := dashboard.ChartPNG(chart)
	if shouldInterupt(err, c) {
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}

func (s *Server) summary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"summary": s.dashboard.SummaryTable(),
	})
}

func (s *Server) records(c *gin.Context) {
	page, err := queryInt(c, "page")
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidPage, err)
		return
	}

	size, err := queryInt(c, "page_size")
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidPage, err)
		return
	}

	c.JSON(http.StatusOK, s.dashboard.Table(page, size, localizer(c)))
}

func (s *Server) workbook(c *gin.Context) {
	sel, ok := parseSelection(c)
	if !ok {
		return
	}

	data, err := s.dashboard.WorkbookXLSX(sel.year, sel.metric, localizer(c))
	if shouldInterupt(err, c) {
		return
	}

	filename := fmt.Sprintf("mortalidad-antioquia-%s-%s.xlsx", sel.year, sel.metric)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// municipality - yearly history, the key is a name key such as `medellin`
// or a municipality code
func (s *Server) municipality(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if code := dataset.NormalizeCode(key, codeWidth()); strings.Trim(code, "0123456789") == "" {
		key = code
	} else {
		key = consts.NameKey(key)
	}

	history, ok := s.dashboard.History(key, localizer(c))
	if !ok {
		abortWithEncoding(c, http.StatusNotFound, errorMunicipalityMissing)
		return
	}

	c.JSON(http.StatusOK, history)
}

func codeWidth() int {
	if w := viper.GetInt("data.code_width"); w > 0 {
		return w
	}
	return dataset.DefaultCodeWidth
}
