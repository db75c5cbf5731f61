package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/antioquia-open-data/mortality-api/schema"
)

type selection struct {
	year      schema.YearSelector
	metric    schema.Metric
	direction schema.Direction
}

// parseSelection - read `year`, `metric` and `direction` from the query
// string, a missing value means every year, the rate and the highest values
func parseSelection(c *gin.Context) (selection, bool) {
	var sel selection
	var err error

	if sel.year, err = schema.ParseYearSelector(c.Query("year")); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidYear, err)
		return sel, false
	}
	if sel.metric, err = schema.ParseMetric(c.Query("metric")); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidMetric, err)
		return sel, false
	}
	if sel.direction, err = schema.ParseDirection(c.Query("direction")); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidDirection, err)
		return sel, false
	}
	return sel, true
}

var errInvalidPage = errors.New("invalid page")

// queryInt - optional positive integer query value, zero when absent
func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, errInvalidPage
	}
	return n, nil
}
