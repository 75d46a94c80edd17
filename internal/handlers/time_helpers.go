package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/makeup-studio/internal/timezone"
)

// parseID reads the :id path parameter as a positive id.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseIDList accepts both ?serviceIds=1,2 and ?serviceIds=1&serviceIds=2.
func parseIDList(values []string) ([]uint, bool) {
	ids := []uint{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil || id == 0 {
				return nil, false
			}
			ids = append(ids, uint(id))
		}
	}
	return ids, true
}

// parseDayRange reads optional from/to dates (YYYY-MM-DD) in loc. to is
// inclusive of the whole day.
func parseDayRange(c *gin.Context, loc *time.Location) (from, to *time.Time, ok bool) {
	if s := c.Query("from"); s != "" {
		d, err := timezone.ParseDate(s, loc)
		if err != nil {
			return nil, nil, false
		}
		from = &d
	}
	if s := c.Query("to"); s != "" {
		d, err := timezone.ParseDate(s, loc)
		if err != nil {
			return nil, nil, false
		}
		end := d.AddDate(0, 0, 1)
		to = &end
	}
	return from, to, true
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return page, limit
}
